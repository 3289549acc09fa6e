package config

import (
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MYSQL_HOST", "127.0.0.1")
	t.Setenv("MYSQL_PORT", "3306")
	t.Setenv("MYSQL_DB", "peerlend")
	t.Setenv("MYSQL_USER", "peerlend")
	t.Setenv("MYSQL_PASS", "secret")
	t.Setenv("ORACLE_URL", "http://oracle:9000")
	t.Setenv("ADMIN_ID", strings.Repeat("a", 32))
	t.Setenv("MIN_LOAN", "100")
	t.Setenv("MAX_LOAN", "1000000")
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	setValidEnv(t)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "120")

	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort default = %q, want 8080", c.AppPort)
	}
	if c.RedisDB != 3 || c.IdempTTLSecs != 120 {
		t.Fatalf("overrides lost: redisDB=%d ttl=%d", c.RedisDB, c.IdempTTLSecs)
	}
	if c.MinLoan != 100 || c.MaxLoan != 1_000_000 {
		t.Fatalf("bounds = [%d,%d]", c.MinLoan, c.MaxLoan)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing mysql host", func(c *Config) { c.MySQLHost = "" }},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "not-a-port" }},
		{"missing oracle url", func(c *Config) { c.OracleURL = "" }},
		{"bad admin id", func(c *Config) { c.AdminID = "ADMIN" }},
		{"zero min loan", func(c *Config) { c.MinLoan = 0 }},
		{"min above max", func(c *Config) { c.MinLoan = 10; c.MaxLoan = 5 }},
	}
	for _, tc := range cases {
		setValidEnv(t)
		c := Load()
		tc.mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestMySQLDSN(t *testing.T) {
	setValidEnv(t)
	c := Load()

	dsn := c.MySQLDSN()
	if !strings.HasPrefix(dsn, "peerlend:secret@tcp(127.0.0.1:3306)/peerlend?") {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
