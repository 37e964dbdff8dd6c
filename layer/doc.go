// Package layer implements the timed building blocks of a composition.
//
// Every layer embeds [Base], which places it on the composition timeline and
// manages the attach/detach lifecycle. [Visual] adds a private drawing surface,
// resolved geometry and an ordered [Effects] pipeline; [Text] and [Image] draw
// their own content on top of it. [Video] and [Audio] share playback logic
// through the embedded [Media] capability.
//
// Properties are [val.Value]s, so any of them may be a constant, a function of
// relative time, or unset. Unset width and height fall back to the owning
// composition. Every setter publishes a "layer.change.<property>" event which
// the layer republishes on its composition as "movie.change.layer.<property>".
//
// Rendering is driven by the composition: Start when a layer enters its active
// window, Render every frame while active and Stop when it leaves.
package layer
