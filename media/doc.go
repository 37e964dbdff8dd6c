// Package media provides in-memory media resources for layers: still images,
// image-sequence video and silent audio clips.
//
// Resources keep their own playback cursor. Metadata may arrive after
// construction, in which case layers wait for it through the OnMetadata and
// OnLoad callbacks.
package media
