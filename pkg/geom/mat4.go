package geom

// Quat 单位四元数，表示旋转
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat 无旋转
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// Mat4 行主序 4x4 矩阵，元素 (r, c) 位于 m[r*4+c]
// 平移位于第 4 列（m[3], m[7], m[11]）
type Mat4 [16]float64

// Identity 单位矩阵
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TRS 按 平移*旋转*缩放 顺序组合变换矩阵
func TRS(pos Vec3, rot Quat, scale Vec3) Mat4 {
	x, y, z, w := rot.X, rot.Y, rot.Z, rot.W

	// 旋转矩阵各列
	r00 := 1 - 2*(y*y+z*z)
	r01 := 2 * (x*y - z*w)
	r02 := 2 * (x*z + y*w)
	r10 := 2 * (x*y + z*w)
	r11 := 1 - 2*(x*x+z*z)
	r12 := 2 * (y*z - x*w)
	r20 := 2 * (x*z - y*w)
	r21 := 2 * (y*z + x*w)
	r22 := 1 - 2*(x*x+y*y)

	return Mat4{
		r00 * scale.X, r01 * scale.Y, r02 * scale.Z, pos.X,
		r10 * scale.X, r11 * scale.Y, r12 * scale.Z, pos.Y,
		r20 * scale.X, r21 * scale.Y, r22 * scale.Z, pos.Z,
		0, 0, 0, 1,
	}
}

// Translation 返回矩阵的平移分量
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// LossyScale 返回各轴缩放（列向量长度），忽略切变
func (m Mat4) LossyScale() Vec3 {
	return Vec3{
		X: Vec3{m[0], m[4], m[8]}.Length(),
		Y: Vec3{m[1], m[5], m[9]}.Length(),
		Z: Vec3{m[2], m[6], m[10]}.Length(),
	}
}

// MulPoint 用矩阵变换一个点（w=1）
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// Mul 矩阵乘法 m*o
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}
