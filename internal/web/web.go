package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// funcMap 模板辅助函数
var funcMap = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
	// paragraphs 将正文按空行拆分为段落
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

// Templates 解析内嵌的全部页面模板，模板名即文件名（如 news.html）
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

// Assets 静态资源文件系统，挂载于 /assets
func Assets() http.FileSystem {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err) // 内嵌路径固定，只可能是编译期错误
	}
	return http.FS(sub)
}
