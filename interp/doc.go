// Package interp provides the interpolation kernels used by keyframe animation.
//
// Available methods, from cheapest to smoothest:
//
//   - [Step]:     hold the earlier value until the next keyframe
//   - [Linear2]:  2-point linear interpolation
//   - [Cosine2]:  2-point cosine easing (zero slope at both ends)
//   - [Hermite4]: 4-point cubic Hermite (Catmull-Rom through neighbours)
//
// The [Mode] enum selects the kernel per keyframe segment.
package interp
