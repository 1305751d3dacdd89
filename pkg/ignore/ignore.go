package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileName 是目录导入时读取的用户规则文件
const FileName = ".fvignore"

// defaultRules 总是生效，用户文件无法覆盖
var defaultRules = []string{
	// 仓库元数据与版本控制目录
	".fv",
	".git",
	// 规则文件本身不作为内容导入
	FileName,
	// 可能含凭据的配置
	"config.yaml",
	".env",
	// 上传暂存文件
	"fv-spool-*",
	// 系统垃圾文件
	".DS_Store",
	"Thumbs.db",
}

// Matcher 判断一个相对路径是否应该在导入时跳过
type Matcher struct {
	ignorer *gitignore.GitIgnore
}

// NewMatcher 读取 root 下的 .fvignore (可选) 并与默认规则合并
func NewMatcher(root string) (*Matcher, error) {
	path := filepath.Join(root, FileName)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		ig, err := gitignore.CompileIgnoreFileAndLines(path, defaultRules...)
		if err != nil {
			return nil, err
		}
		return &Matcher{ignorer: ig}, nil
	case errors.Is(err, fs.ErrNotExist):
		return &Matcher{ignorer: gitignore.CompileIgnoreLines(defaultRules...)}, nil
	default:
		return nil, err
	}
}

// Matches 的 path 是相对于导入根目录的路径，分隔符任意
func (m *Matcher) Matches(path string) bool {
	if m == nil || m.ignorer == nil {
		return false
	}
	return m.ignorer.MatchesPath(filepath.ToSlash(path))
}
