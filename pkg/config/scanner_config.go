package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置文件路径
const DefaultConfigPath = "data/scanner.yaml"

// Config 扫描器演示程序的完整配置
//
// 配置文件位置: data/scanner.yaml
// 文件中缺省的字段保留 DefaultConfig() 中的取值。
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	Ball    BallConfig    `yaml:"ball"`
	Scene   SceneConfig   `yaml:"scene"`
}

// Range 闭区间 [Min, Max]，用于均匀采样
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp 按比例 t (0~1) 返回区间内的值
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// validate 检查 Min <= Max
func (r Range) validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s range invalid: min(%.3f) > max(%.3f)", name, r.Min, r.Max)
	}
	return nil
}

// ScannerConfig 扫描器参数
type ScannerConfig struct {
	// Capacity 扫描点缓冲区容量上限
	Capacity int `yaml:"capacity"`

	// LifetimeSeconds 扫描点存活时间（秒）
	LifetimeSeconds float64 `yaml:"lifetimeSeconds"`

	// SweepIntervalSeconds 过期清理任务的执行间隔（秒）
	SweepIntervalSeconds float64 `yaml:"sweepIntervalSeconds"`

	// RayRange 射线最大检测距离
	RayRange float64 `yaml:"rayRange"`

	// AreaRaysPerUnit 面扫描每单位长度的射线数
	AreaRaysPerUnit float64 `yaml:"areaRaysPerUnit"`

	// LineRaysPerUnit 线扫描每单位长度的射线数
	LineRaysPerUnit float64 `yaml:"lineRaysPerUnit"`

	// PatchSize 扫描面片尺寸的钳制范围
	PatchSize Range `yaml:"patchSize"`

	// InitialPatchSize 初始面片宽高
	InitialPatchSize float64 `yaml:"initialPatchSize"`

	// ScrollStep 每单位滚轮增量对应的尺寸变化
	ScrollStep float64 `yaml:"scrollStep"`

	// SpawnDelay 创建时间相对当前时间的随机偏移（秒）
	SpawnDelay Range `yaml:"spawnDelay"`

	// PointScale 扫描点的统一缩放
	PointScale float64 `yaml:"pointScale"`

	// Blue 扫描点颜色蓝色通道范围
	Blue Range `yaml:"blue"`

	// ScanLayers 射线检测的层名列表
	ScanLayers []string `yaml:"scanLayers"`
}

// BallConfig 小球参数
type BallConfig struct {
	// DestroyDelay 自毁延迟范围（秒）
	DestroyDelay Range `yaml:"destroyDelay"`

	// Blue 小球颜色蓝色通道范围
	Blue Range `yaml:"blue"`

	// Radius 小球半径
	Radius float64 `yaml:"radius"`

	// Layer 小球所在碰撞层名
	Layer string `yaml:"layer"`

	// SpawnDistance 生成点距相机的距离
	SpawnDistance float64 `yaml:"spawnDistance"`

	// SpawnSpeed 生成时沿相机前方的初速度
	SpawnSpeed float64 `yaml:"spawnSpeed"`

	// Gravity 重力加速度（向下为正）
	Gravity float64 `yaml:"gravity"`

	// Bounce 落地反弹系数 0~1
	Bounce float64 `yaml:"bounce"`
}

// BoxConfig 场景中的静态盒子
type BoxConfig struct {
	Center      [3]float64 `yaml:"center"`
	HalfExtents [3]float64 `yaml:"halfExtents"`
}

// CameraConfig 相机初始状态与移动参数
type CameraConfig struct {
	Position  [3]float64 `yaml:"position"`
	Yaw       float64    `yaml:"yaw"`   // 角度
	Pitch     float64    `yaml:"pitch"` // 角度
	FOV       float64    `yaml:"fov"`   // 垂直视场角（角度）
	MoveSpeed float64    `yaml:"moveSpeed"`
	LookSpeed float64    `yaml:"lookSpeed"` // 角度/秒
}

// SceneConfig 场景参数
type SceneConfig struct {
	// Layers 层名 -> 层编号
	Layers map[string]int `yaml:"layers"`

	// EnvironmentLayer 地面与盒子所在层名
	EnvironmentLayer string `yaml:"environmentLayer"`

	// Boxes 静态盒子列表
	Boxes []BoxConfig `yaml:"boxes"`

	// Camera 相机参数
	Camera CameraConfig `yaml:"camera"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Capacity:             120000,
			LifetimeSeconds:      30,
			SweepIntervalSeconds: 0.01,
			RayRange:             100,
			AreaRaysPerUnit:      3,
			LineRaysPerUnit:      20,
			PatchSize:            Range{Min: 0.5, Max: 3.0},
			InitialPatchSize:     1.0,
			ScrollStep:           0.1,
			SpawnDelay:           Range{Min: 0, Max: 5},
			PointScale:           0.01,
			Blue:                 Range{Min: 0.2, Max: 0.6},
			ScanLayers:           []string{"default", "environment", "ball"},
		},
		Ball: BallConfig{
			DestroyDelay:  Range{Min: 10, Max: 15},
			Blue:          Range{Min: 0.2, Max: 0.7},
			Radius:        0.25,
			Layer:         "ball",
			SpawnDistance: 2,
			SpawnSpeed:    4,
			Gravity:       9.81,
			Bounce:        0.5,
		},
		Scene: SceneConfig{
			Layers: map[string]int{
				"default":     0,
				"environment": 1,
				"ball":        2,
			},
			EnvironmentLayer: "environment",
			Boxes: []BoxConfig{
				{Center: [3]float64{0, 1, 8}, HalfExtents: [3]float64{2, 1, 0.5}},
				{Center: [3]float64{-4, 2, 12}, HalfExtents: [3]float64{0.5, 2, 0.5}},
				{Center: [3]float64{4, 1.5, 10}, HalfExtents: [3]float64{1, 1.5, 1}},
				{Center: [3]float64{0, 3, 20}, HalfExtents: [3]float64{8, 3, 0.5}},
			},
			Camera: CameraConfig{
				Position:  [3]float64{0, 1.6, 0},
				Yaw:       0,
				Pitch:     -5,
				FOV:       60,
				MoveSpeed: 4,
				LookSpeed: 90,
			},
		},
	}
}

// ParseConfig 解析 YAML 数据，覆盖到默认配置之上并校验
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scanner config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scanner config: %w", err)
	}

	return cfg, nil
}

// LoadConfig 从文件加载配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scanner.yaml"）
//
// 返回:
//   - *Config: 加载成功后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scanner config: %w", err)
	}
	return ParseConfig(data)
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	s := &c.Scanner
	if s.Capacity <= 0 {
		return fmt.Errorf("scanner capacity must be positive, got %d", s.Capacity)
	}
	if s.LifetimeSeconds <= 0 {
		return fmt.Errorf("scanner lifetime must be positive, got %.3f", s.LifetimeSeconds)
	}
	if s.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %.3f", s.SweepIntervalSeconds)
	}
	if s.RayRange <= 0 {
		return fmt.Errorf("ray range must be positive, got %.3f", s.RayRange)
	}
	if s.AreaRaysPerUnit <= 0 || s.LineRaysPerUnit <= 0 {
		return fmt.Errorf("ray densities must be positive (area=%.3f, line=%.3f)", s.AreaRaysPerUnit, s.LineRaysPerUnit)
	}
	if err := s.PatchSize.validate("patchSize"); err != nil {
		return err
	}
	if s.PatchSize.Min <= 0 {
		return fmt.Errorf("patchSize min must be positive, got %.3f", s.PatchSize.Min)
	}
	if s.InitialPatchSize < s.PatchSize.Min || s.InitialPatchSize > s.PatchSize.Max {
		return fmt.Errorf("initialPatchSize %.3f outside patchSize range", s.InitialPatchSize)
	}
	if err := s.SpawnDelay.validate("spawnDelay"); err != nil {
		return err
	}
	if err := s.Blue.validate("scanner blue"); err != nil {
		return err
	}
	if s.Blue.Min < 0 || s.Blue.Max > 1 {
		return fmt.Errorf("scanner blue range must be within [0, 1]")
	}
	if len(s.ScanLayers) == 0 {
		return fmt.Errorf("scanLayers must not be empty")
	}

	b := &c.Ball
	if err := b.DestroyDelay.validate("ball destroyDelay"); err != nil {
		return err
	}
	if b.DestroyDelay.Min <= 0 {
		return fmt.Errorf("ball destroyDelay min must be positive, got %.3f", b.DestroyDelay.Min)
	}
	if err := b.Blue.validate("ball blue"); err != nil {
		return err
	}
	if b.Blue.Min < 0 || b.Blue.Max > 1 {
		return fmt.Errorf("ball blue range must be within [0, 1]")
	}
	if b.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %.3f", b.Radius)
	}
	if b.Bounce < 0 || b.Bounce > 1 {
		return fmt.Errorf("ball bounce must be within [0, 1], got %.3f", b.Bounce)
	}

	sc := &c.Scene
	if len(sc.Layers) == 0 {
		return fmt.Errorf("scene layers must not be empty")
	}
	for _, name := range append([]string{b.Layer, sc.EnvironmentLayer}, s.ScanLayers...) {
		if _, ok := sc.Layers[name]; !ok {
			return fmt.Errorf("layer %q is not declared in scene.layers", name)
		}
	}
	for i, box := range sc.Boxes {
		for _, h := range box.HalfExtents {
			if h <= 0 {
				return fmt.Errorf("box %d has non-positive half extent", i)
			}
		}
	}
	if sc.Camera.FOV <= 0 || sc.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be within (0, 180), got %.1f", sc.Camera.FOV)
	}

	return nil
}
