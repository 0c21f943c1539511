package xpathconf

import (
	"fmt"
	"strconv"
	"strings"
)

// NoLimit 是 pathconf 表示“无确定上限”的哨兵值，不是错误。
const NoLimit int64 = -1

// Name 是宿主定义的 pathconf 配置名（_PC_* 常量）。
// 数值因平台而异，应通过 [StandardNames] 或 [ParseName] 获取，不要硬编码。
type Name int

// 标准配置名的符号名称。
const (
	symLinkMax = "LINK_MAX"
	symPathMax = "PATH_MAX"
	symNameMax = "NAME_MAX"
	symPipeBuf = "PIPE_BUF"
)

// hostCodeSet 保存宿主四个标准配置名的编码，由各平台文件提供。
type hostCodeSet struct {
	linkMax int
	pathMax int
	nameMax int
	pipeBuf int
}

// String 对四个标准配置名返回符号名称（如 "NAME_MAX"），其余返回 "Name(n)"。
func (n Name) String() string {
	if hostSupported {
		switch int(n) {
		case hostCodes.linkMax:
			return symLinkMax
		case hostCodes.pathMax:
			return symPathMax
		case hostCodes.nameMax:
			return symNameMax
		case hostCodes.pipeBuf:
			return symPipeBuf
		}
	}
	return "Name(" + strconv.Itoa(int(n)) + ")"
}

// Names 是宿主四个标准配置名的编码记录，构建后不可变。
type Names struct {
	LinkMax Name `json:"LINK_MAX"`
	PathMax Name `json:"PATH_MAX"`
	NameMax Name `json:"NAME_MAX"`
	PipeBuf Name `json:"PIPE_BUF"`
}

// All 按声明顺序返回四个配置名。
func (s Names) All() []Name {
	return []Name{s.LinkMax, s.PathMax, s.NameMax, s.PipeBuf}
}

// newNames 逐字段构建 Names，负数编码视为构建失败。
func newNames(linkMax, pathMax, nameMax, pipeBuf int) (Names, error) {
	fields := [...]struct {
		sym  string
		code int
	}{
		{symLinkMax, linkMax},
		{symPathMax, pathMax},
		{symNameMax, nameMax},
		{symPipeBuf, pipeBuf},
	}
	for _, f := range fields {
		if f.code < 0 {
			return Names{}, &ConstructionError{
				Field: f.sym,
				Err:   fmt.Errorf("negative code %d", f.code),
			}
		}
	}
	return Names{
		LinkMax: Name(linkMax),
		PathMax: Name(pathMax),
		NameMax: Name(nameMax),
		PipeBuf: Name(pipeBuf),
	}, nil
}

// StandardNames 返回宿主的标准配置名记录（LINK_MAX、PATH_MAX、NAME_MAX、PIPE_BUF）。
//
// 结果只取决于编译目标平台，重复调用返回相同的值。
// 平台不支持时返回包装 [ErrUnsupportedPlatform] 的 [ConstructionError]。
func StandardNames() (Names, error) {
	if !hostSupported {
		return Names{}, &ConstructionError{Err: ErrUnsupportedPlatform}
	}
	return newNames(hostCodes.linkMax, hostCodes.pathMax, hostCodes.nameMax, hostCodes.pipeBuf)
}

// ParseName 将字符串解析为配置名。
//
// 接受 "NAME_MAX"、"_PC_NAME_MAX"、"name_max"（忽略大小写和首尾空白）
// 或十进制编码（如 "3"，原样透传给宿主）。
func ParseName(s string) (Name, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownName)
	}
	// 编码限制在 32 位内，与宿主 pathconf 的 int 参数一致。
	if code, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
		if code < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownName, s)
		}
		return Name(code), nil
	}

	sym := strings.TrimPrefix(strings.ToUpper(trimmed), "_PC_")
	switch sym {
	case symLinkMax, symPathMax, symNameMax, symPipeBuf:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, s)
	}

	names, err := StandardNames()
	if err != nil {
		return 0, err
	}
	switch sym {
	case symLinkMax:
		return names.LinkMax, nil
	case symPathMax:
		return names.PathMax, nil
	case symNameMax:
		return names.NameMax, nil
	default:
		return names.PipeBuf, nil
	}
}
