//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/khanaslam439/vidar/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("load", export(func(args []js.Value) any {
		if len(args) < 1 {
			return "load: missing scene document"
		}
		e, err := webdemo.NewEngine([]byte(args[0].String()))
		if err != nil {
			return err.Error()
		}
		if engine != nil {
			engine.Close()
		}
		engine = e
		return js.Null()
	}))

	api.Set("setRunning", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetRunning(args[0].Bool())
		return js.Null()
	}))

	api.Set("seek", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.Seek(args[0].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("advance", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.Advance(args[0].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("frame", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		w, h, pix := engine.Frame()
		data := js.Global().Get("Uint8ClampedArray").New(len(pix))
		js.CopyBytesToJS(data, pix)

		out := js.Global().Get("Object").New()
		out.Set("width", w)
		out.Set("height", h)
		out.Set("data", data)
		return out
	}))

	api.Set("duration", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.Duration()
	}))

	api.Set("currentTime", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.CurrentTime()
	}))

	api.Set("running", export(func(args []js.Value) any {
		return engine != nil && engine.Running()
	}))

	api.Set("layers", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Array").New(0)
		}
		layers := engine.Layers()
		arr := js.Global().Get("Array").New(len(layers))
		for i, l := range layers {
			item := js.Global().Get("Object").New()
			item.Set("type", l.Type)
			item.Set("start", l.Start)
			item.Set("duration", l.Duration)
			item.Set("enabled", l.Enabled)
			arr.SetIndex(i, item)
		}
		return arr
	}))

	api.Set("setLayerEnabled", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		if err := engine.SetLayerEnabled(args[0].Int(), args[1].Bool()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	js.Global().Set("vidar", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
