// Package mimetype 负责声明类型的规范化与按扩展名推断
package mimetype

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"
)

// Unknown 表示无法识别的类型
const Unknown = "application/octet-stream"

// Other 是列表过滤中的特殊值：已知类型表之外的所有文件
const Other = "other"

// known 记录已知的 MIME 类型及其扩展名
var known = []struct {
	typ  string
	exts []string
}{
	{"application/pdf", []string{".pdf"}},
	{"image/png", []string{".png"}},
	{"image/jpeg", []string{".jpg", ".jpeg"}},
	{"image/gif", []string{".gif"}},
	{"text/plain", []string{".txt"}},
	{"text/x-python", []string{".py"}},
	{"application/json", []string{".json"}},
	{"text/csv", []string{".csv"}},
	{"text/markdown", []string{".md"}},
	{"application/parquet", []string{".parquet"}},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{".xlsx"}},
	{"application/vnd.ms-excel", []string{".xls"}},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []string{".docx"}},
	{"application/msword", []string{".doc"}},
	{"application/vnd.ms-powerpoint", []string{".ppt"}},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", []string{".pptx"}},
	{"application/zip", []string{".zip"}},
	{"application/x-rar-compressed", []string{".rar"}},
	{"application/x-7z-compressed", []string{".7z"}},
	{"application/x-tar", []string{".tar"}},
	{"application/gzip", []string{".gz"}},
	{"text/html", []string{".html", ".htm"}},
	{"text/css", []string{".css"}},
	{"application/javascript", []string{".js"}},
	{"application/typescript", []string{".ts"}},
	{"text/x-java-source", []string{".java"}},
	{"text/x-c", []string{".c"}},
	{"text/x-c++", []string{".cpp"}},
	{"text/x-c-header", []string{".h"}},
	{"text/x-c++-header", []string{".hpp"}},
	{"text/x-go", []string{".go"}},
	{"text/x-rust", []string{".rs"}},
	{"text/x-ruby", []string{".rb"}},
	{"text/x-php", []string{".php"}},
	{"text/x-shellscript", []string{".sh"}},
	{"application/x-msdos-program", []string{".bat"}},
	{"application/x-powershell", []string{".ps1"}},
	{"application/sql", []string{".sql"}},
	{"application/x-yaml", []string{".yaml", ".yml"}},
	{"application/toml", []string{".toml"}},
}

// byExt 是 known 的扩展名索引
var byExt = make(map[string]string)

func init() {
	for _, k := range known {
		for _, ext := range k.exts {
			byExt[ext] = k.typ
		}
	}
}

// FromExtension 按扩展名查表，ext 可以带或不带前导点，大小写不敏感
func FromExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if typ, ok := byExt[ext]; ok {
		return typ
	}
	return Unknown
}

// FromFilename 用文件名的扩展名推断类型
func FromFilename(name string) string {
	return FromExtension(filepath.Ext(name))
}

// Resolve 决定一个上传最终记录的类型：
// 声明了具体类型就规范化后使用，否则按文件名推断
func Resolve(declared, filename string) string {
	if t := Normalize(declared); t != "" && t != Unknown {
		return t
	}
	return FromFilename(filename)
}

// Normalize 去掉参数部分 (例如 "; charset=utf-8") 并转小写
// 无法解析时返回空串
func Normalize(declared string) string {
	if strings.TrimSpace(declared) == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return ""
	}
	return mt
}

// Known 返回所有已知类型 (有序，便于构造 SQL 的 NOT IN)
func Known() []string {
	out := make([]string, 0, len(known))
	for _, k := range known {
		out = append(out, k.typ)
	}
	sort.Strings(out)
	return out
}

// Selector 把用户给的过滤值翻译成查询条件
// 返回 include (精确匹配的类型) 或 exclude (排除的类型集合)，二者至多一个非空
//   - "other"       -> exclude = Known()
//   - 含 "/"         -> include = 该 MIME
//   - 其他视为扩展名 -> include = FromExtension
func Selector(filter string) (include string, exclude []string) {
	filter = strings.TrimSpace(filter)
	switch {
	case filter == "":
		return "", nil
	case strings.EqualFold(filter, Other):
		return "", Known()
	case strings.Contains(filter, "/"):
		return strings.ToLower(filter), nil
	default:
		return FromExtension(filter), nil
	}
}
