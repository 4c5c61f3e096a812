package configs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/rule"
)

// TestDefaultsAreValid 默认配置必须通过 rule 校验.
func TestDefaultsAreValid(t *testing.T) {
	cfg := configs.Defaults()
	if err := rule.ValidateStruct(cfg); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}

	if cfg.Intake.MaxFiles != 10 {
		t.Errorf("intake.max_files = %d, want 10", cfg.Intake.MaxFiles)
	}

	if cfg.Intake.AutoApprove {
		t.Error("intake.auto_approve should default to false")
	}

	if cfg.Voice.MaxDurationSeconds != 30 {
		t.Errorf("voice.max_duration_seconds = %d, want 30", cfg.Voice.MaxDurationSeconds)
	}

	if cfg.Admin.Configured() {
		t.Error("admin password must be empty by default")
	}
}

// TestInitConfigFromFile 从 yaml 文件加载并校验覆盖值.
func TestInitConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 9191
  reload_config: false
db:
  type: sqlite
  database: ":memory:"
admin:
  password: "s3cret"
intake:
  auto_approve: true
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := configs.InitConfig(dir); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	cfg := configs.GetConfig()
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d", cfg.Server.Port)
	}

	if cfg.DB.Driver() != configs.SQLite || cfg.DB.GetDSN() != ":memory:" {
		t.Errorf("unexpected db config: %+v dsn=%q", cfg.DB, cfg.DB.GetDSN())
	}

	if cfg.Admin.Password != "s3cret" || !cfg.Intake.AutoApprove {
		t.Errorf("admin/intake not loaded: %+v %+v", cfg.Admin, cfg.Intake)
	}

	// 未写入文件的段保留默认值
	if cfg.S3.BucketName != configs.DefaultS3BucketName {
		t.Errorf("bucket = %q", cfg.S3.BucketName)
	}
}

// TestInitConfigEnvOverride 环境变量覆盖文件值.
func TestInitConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  reload_config: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("KEEPSAKE_ADMIN_PASSWORD", "from-env")
	t.Setenv("KEEPSAKE_SERVER_PORT", "7000")

	if err := configs.InitConfig(dir); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	cfg := configs.GetConfig()
	if cfg.Admin.Password != "from-env" {
		t.Errorf("admin password = %q", cfg.Admin.Password)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

// TestInitConfigRejectsInvalid 非法取值应返回错误.
func TestInitConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  reload_config: false\nkv:\n  type: etcd\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := configs.InitConfig(dir); err == nil {
		t.Fatal("expected validation error for kv.type=etcd")
	}
}

func TestDSN(t *testing.T) {
	pg := configs.DBConfig{Type: configs.Pg, Host: "db", Port: 5432, User: "u", Password: "p", Database: "k", SSLMode: "disable"}
	if got := pg.GetDSN(); got != "host=db port=5432 user=u password=p dbname=k sslmode=disable" {
		t.Errorf("pg dsn = %q", got)
	}

	my := configs.DBConfig{Type: configs.MariaDB, Host: "db", Port: 3306, User: "u", Password: "p", Database: "k"}
	if got := my.GetDSN(); !strings.HasPrefix(got, "u:p@tcp(db:3306)/k?") {
		t.Errorf("mysql dsn = %q", got)
	}

	lite := configs.DBConfig{Type: configs.SQLite, Database: "keepsake"}
	if got := lite.GetDSN(); !strings.HasPrefix(got, "file:keepsake.db") {
		t.Errorf("sqlite dsn = %q", got)
	}
}

func TestObjectURL(t *testing.T) {
	c := configs.S3Config{Endpoint: "localhost:9000", BucketName: "b"}
	if got := c.ObjectURL("family/1-a.jpg"); got != "http://localhost:9000/b/family/1-a.jpg" {
		t.Errorf("ObjectURL = %q", got)
	}

	c.PublicBaseURL = "https://cdn.example.com/"
	if got := c.ObjectURL("/voice/x.webm"); got != "https://cdn.example.com/b/voice/x.webm" {
		t.Errorf("ObjectURL = %q", got)
	}
}
