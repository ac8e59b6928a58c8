package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	FFmpeg   FFmpegConfig   `mapstructure:"ffmpeg"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 认证配置
// Token 由外部认证服务签发，这里只做校验；JWTSecret 为空时不启用鉴权
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`          // JWT密钥
	Issuer            string        `mapstructure:"issuer"`              // 签发方
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"` // Access Token过期时间（仅用于测试签发）
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径
	BaseURL  string `mapstructure:"base_url"`  // 基础URL（用于生成访问URL）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	Prefix          string `mapstructure:"prefix"`            // 对象前缀
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// TimelineConfig 时间轴合成配置
type TimelineConfig struct {
	DefaultFPS    float64       `mapstructure:"default_fps"`     // 文档未设置帧率时使用
	BGMFadeMs     int64         `mapstructure:"bgm_fade_ms"`     // 全局 BGM 避让淡变时长
	OverlayFadeMs int64         `mapstructure:"overlay_fade_ms"` // 叠加层淡变时长
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`       // 合成结果缓存时长
	SampleWorkers int           `mapstructure:"sample_workers"`  // 区间采样并发数
	ExportPrefix  string        `mapstructure:"export_prefix"`   // 导出文件的存储前缀
}

// FFmpegConfig 外部工具路径
type FFmpegConfig struct {
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	FFprobePath string        `mapstructure:"ffprobe_path"`
	Timeout     time.Duration `mapstructure:"timeout"` // 单次探测超时
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	return c.Timeline.Validate()
}

// Validate 验证时间轴配置
func (c *TimelineConfig) Validate() error {
	if c.DefaultFPS <= 0 {
		return errors.New("invalid timeline.default_fps, must be positive")
	}
	if c.BGMFadeMs <= 0 || c.OverlayFadeMs <= 0 {
		return errors.New("invalid timeline fade duration, must be positive")
	}
	if c.SampleWorkers <= 0 {
		return errors.New("invalid timeline.sample_workers, must be positive")
	}
	return nil
}
