// Package effect provides post-processing effects for visual layers.
//
// Every effect implements layer.Effect and operates in place on the layer's
// surface after the layer has drawn. Parameters are val.Value so they can be
// animated over the layer's relative time.
//
// Effects can be constructed directly or by name through a Registry, which is
// how scene files build them:
//
//	reg := effect.DefaultRegistry()
//	fx, err := reg.New(effect.Params{Type: "brightness", Num: map[string]val.Value[float64]{
//		"amount": val.Const(40.0),
//	}})
package effect
