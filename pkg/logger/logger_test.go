package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"community-portal/config"
)

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, err := NewLogger(&config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("无效级别应返回错误")
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.log")
	l, err := NewLogger(&config.LogConfig{
		Level:      "info",
		Format:     "console",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("NewLogger 应成功: %v", err)
	}

	l.Info("文件日志测试")
	l.Debug("不应写入的调试日志")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "文件日志测试") {
		t.Errorf("日志文件缺少 info 日志: %s", data)
	}
	if strings.Contains(string(data), "不应写入的调试日志") {
		t.Error("debug 日志不应写入 info 级别日志文件")
	}
}
