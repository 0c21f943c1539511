// Package xconf 提供配置文件加载和反序列化，基于 koanf 实现。
//
// 定位为最小化加载器：负责文件/字节数据的加载与 Unmarshal，
// 不负责必选字段校验和默认值注入，这些由调用方在 Unmarshal 前后处理。
//
// 支持的格式：YAML（.yaml/.yml，默认）与 JSON（.json）。
//
//	cfg, err := xconf.New("/etc/xpathconf.yaml")
//	if err != nil {
//		return err
//	}
//	var app AppConfig
//	if err := cfg.Unmarshal("", &app); err != nil {
//		return err
//	}
//
// Unmarshal 使用 mapstructure 并允许弱类型转换（如 "4" → 4）。
// 所有方法并发安全。
package xconf
