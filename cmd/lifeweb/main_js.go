//go:build js && wasm

// Command lifeweb is the browser front end. It is compiled with
// GOOS=js GOARCH=wasm and started from index.html through
// globalThis.golife.start(canvasID, options).
package main

import (
	"fmt"
	"strconv"
	"syscall/js"

	"golife/internal/life"
)

// board draws a Game on a canvas and wires the page controls to it.
type board struct {
	game    *life.Game
	doc     js.Value
	canvas  js.Value
	ctx     js.Value
	status  js.Value
	freq    js.Value
	freqOut js.Value

	dirty bool
	funcs []js.Func
	frame js.Func
}

func main() {
	handle := js.Global().Get("Object").New()
	start := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 || args[0].Type() != js.TypeString {
			return reportError("golife.start: canvas id required")
		}
		opts := startOptions{}
		if len(args) > 1 && args[1].Type() == js.TypeObject {
			opts = readOptions(args[1])
		}
		if err := run(args[0].String(), opts); err != nil {
			return reportError(err.Error())
		}
		return nil
	})
	handle.Set("start", start)
	js.Global().Set("golife", handle)

	// Returning would exit the program and invalidate the callbacks.
	select {}
}

func readOptions(v js.Value) startOptions {
	var o startOptions
	if s := v.Get("size"); s.Type() == js.TypeNumber {
		o.Size = s.Int()
	}
	if t := v.Get("topology"); t.Type() == js.TypeString {
		o.Topology = t.String()
	}
	if f := v.Get("frequency"); f.Type() == js.TypeNumber {
		o.Frequency = f.Float()
	}
	if p := v.Get("pattern"); p.Type() == js.TypeString {
		o.Pattern = p.String()
	}
	return o
}

// reportError shows msg in the page's error box and returns it as a JS
// Error for the caller.
func reportError(msg string) any {
	doc := js.Global().Get("document")
	if box := doc.Call("getElementById", "life-error"); box.Truthy() {
		box.Set("hidden", false)
		box.Set("textContent", msg)
	}
	js.Global().Get("console").Call("error", msg)
	return js.Global().Get("Error").New(msg)
}

func run(canvasID string, opts startOptions) error {
	g, err := newGame(opts)
	if err != nil {
		return err
	}
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", canvasID)
	if !canvas.Truthy() {
		return fmt.Errorf("no canvas with id %q", canvasID)
	}

	px := canvasPixels(g.Grid().Size())
	canvas.Set("width", px)
	canvas.Set("height", px)

	b := &board{
		game:    g,
		doc:     doc,
		canvas:  canvas,
		ctx:     canvas.Call("getContext", "2d"),
		status:  doc.Call("getElementById", "life-status"),
		freq:    doc.Call("getElementById", "life-frequency"),
		freqOut: doc.Call("getElementById", "life-frequency-value"),
		dirty:   true,
	}
	b.bind()
	b.syncFrequency()

	b.frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		now := args[0].Float()
		if b.game.Advance(msToDuration(now)) {
			b.dirty = true
		}
		if b.dirty {
			b.draw()
			b.dirty = false
		}
		js.Global().Call("requestAnimationFrame", b.frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", b.frame)
	return nil
}

func (b *board) on(target js.Value, event string, fn func(js.Value)) {
	if !target.Truthy() {
		return
	}
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	b.funcs = append(b.funcs, f)
	target.Call("addEventListener", event, f)
}

func (b *board) bind() {
	b.on(b.canvas, "click", func(ev js.Value) {
		x, y, ok := cellAt(
			ev.Get("offsetX").Float(), ev.Get("offsetY").Float(),
			b.canvas.Get("clientWidth").Float(), b.canvas.Get("clientHeight").Float(),
			b.game.Grid().Size(),
		)
		if !ok {
			return
		}
		_ = b.game.Grid().Toggle(x, y)
		b.dirty = true
	})
	b.on(b.doc.Call("getElementById", "life-play"), "click", func(js.Value) {
		b.game.Play()
		b.dirty = true
	})
	b.on(b.doc.Call("getElementById", "life-pause"), "click", func(js.Value) {
		b.game.Pause()
		b.dirty = true
	})
	b.on(b.doc.Call("getElementById", "life-clear"), "click", func(js.Value) {
		b.game.Clear()
		b.dirty = true
	})
	b.on(b.freq, "input", func(js.Value) {
		f, err := strconv.ParseFloat(b.freq.Get("value").String(), 64)
		if err != nil {
			return
		}
		b.game.SetFrequency(f)
		b.syncFrequency()
	})
}

func (b *board) syncFrequency() {
	text := strconv.FormatFloat(b.game.Frequency(), 'f', 1, 64)
	if b.freq.Truthy() {
		b.freq.Set("value", text)
	}
	if b.freqOut.Truthy() {
		b.freqOut.Set("textContent", text)
	}
}

func (b *board) draw() {
	g := b.game.Grid()
	size := g.Size()
	px := canvasPixels(size)
	ctx := b.ctx

	ctx.Set("fillStyle", deadColor)
	ctx.Call("fillRect", 0, 0, px, px)

	ctx.Set("fillStyle", aliveColor)
	for _, c := range g.Cells() {
		ctx.Call("fillRect", c.X*cellPixels, c.Y*cellPixels, cellPixels, cellPixels)
	}

	ctx.Set("strokeStyle", gridColor)
	ctx.Set("lineWidth", 1)
	ctx.Call("beginPath")
	for i := 0; i <= size; i++ {
		p := float64(i*cellPixels) + 0.5
		ctx.Call("moveTo", p, 0)
		ctx.Call("lineTo", p, px)
		ctx.Call("moveTo", 0, p)
		ctx.Call("lineTo", px, p)
	}
	ctx.Call("stroke")

	if b.status.Truthy() {
		b.status.Set("textContent", statusText(b.game))
	}
}
