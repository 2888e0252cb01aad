package scan

import (
	"math"

	"github.com/decker502/scanfx/pkg/geom"
)

// Rand 扫描图案使用的随机源，*rand.Rand 满足该接口
type Rand interface {
	Float64() float64
}

// StepCount 返回尺寸 size 在密度 density 下的分段数（至少为 1）
// 射线数为 StepCount+1，两端各有一条
func StepCount(size, density float64) int {
	steps := int(math.Round(size * density))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// AreaRayCount 面扫描的射线总数
func AreaRayCount(width, height, density float64) int {
	return (StepCount(height, density) + 1) * (StepCount(width, density) + 1)
}

// LineRayCount 线扫描的射线总数
func LineRayCount(width, density float64) int {
	return StepCount(width, density) + 1
}

// jitter 返回 [-half, half) 内的随机偏移
func jitter(rng Rand, half float64) float64 {
	return (rng.Float64()*2 - 1) * half
}

// AreaOrigins 生成面扫描的射线起点，追加到 dst 并返回
//
// 以 center 为中心、沿相机 Right/Up 张成 width x height 的面片，
// 按密度铺成网格；每个起点在两个轴上各随机偏移不超过半个间距，避免网格走样。
func AreaOrigins(dst []geom.Vec3, center geom.Vec3, basis geom.Basis, width, height, density float64, rng Rand) []geom.Vec3 {
	stepsH := StepCount(height, density)
	stepsW := StepCount(width, density)

	halfUp := basis.Up.Scale(height / 2)
	halfRight := basis.Right.Scale(width / 2)

	bottomLeft := center.Sub(halfUp).Sub(halfRight)
	bottomRight := center.Sub(halfUp).Add(halfRight)
	topLeft := center.Add(halfUp).Sub(halfRight)
	topRight := center.Add(halfUp).Add(halfRight)

	halfSpacingW := width / (2 * float64(stepsW))
	halfSpacingH := height / (2 * float64(stepsH))

	for i := 0; i <= stepsH; i++ {
		tH := float64(i) / float64(stepsH)
		left := geom.Lerp(bottomLeft, topLeft, tH)
		right := geom.Lerp(bottomRight, topRight, tH)

		for j := 0; j <= stepsW; j++ {
			tW := float64(j) / float64(stepsW)
			origin := geom.Lerp(left, right, tW)

			origin = origin.
				Add(basis.Right.Scale(jitter(rng, halfSpacingW))).
				Add(basis.Up.Scale(jitter(rng, halfSpacingH)))
			dst = append(dst, origin)
		}
	}
	return dst
}

// LineOrigins 生成线扫描的射线起点，追加到 dst 并返回
//
// 起点沿 axis 分布在以 center 为中点、长度为 width 的线段上，
// 只在 axis 方向做不超过半个间距的随机偏移。
func LineOrigins(dst []geom.Vec3, center, axis geom.Vec3, width, density float64, rng Rand) []geom.Vec3 {
	steps := StepCount(width, density)

	half := axis.Scale(width / 2)
	start := center.Sub(half)
	end := center.Add(half)
	halfSpacing := width / (2 * float64(steps))

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		origin := geom.Lerp(start, end, t)
		origin = origin.Add(axis.Scale(jitter(rng, halfSpacing)))
		dst = append(dst, origin)
	}
	return dst
}
