//go:build mobile

// Package utils 提供平台相关的辅助函数
package utils

// IsMobile 移动端编译时恒为 true
func IsMobile() bool {
	return true
}
