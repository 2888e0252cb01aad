//go:build !mobile

// Package utils 提供平台相关的辅助函数
package utils

import "os"

// MobileEmulateEnv 设置为 "1" 时桌面端按移动端行为运行（用于本地调试触摸操作）
const MobileEmulateEnv = "SCANFX_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
