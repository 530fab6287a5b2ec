package app

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("GATEHOUSE_TEST_STR", "  value  ")
	if got := EnvString("GATEHOUSE_TEST_STR", "def"); got != "value" {
		t.Fatalf("EnvString=%q want=%q", got, "value")
	}
	if got := EnvString("GATEHOUSE_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("EnvString fallback=%q want=%q", got, "def")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("GATEHOUSE_TEST_BOOL", "true")
	if !EnvBool("GATEHOUSE_TEST_BOOL", false) {
		t.Fatalf("EnvBool should parse true")
	}
	t.Setenv("GATEHOUSE_TEST_BOOL", "not-a-bool")
	if !EnvBool("GATEHOUSE_TEST_BOOL", true) {
		t.Fatalf("EnvBool should fall back on parse error")
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("GATEHOUSE_TEST_DUR", "150ms")
	if got := EnvDuration("GATEHOUSE_TEST_DUR", time.Second); got != 150*time.Millisecond {
		t.Fatalf("EnvDuration=%v want=150ms", got)
	}
	t.Setenv("GATEHOUSE_TEST_DUR", "nope")
	if got := EnvDuration("GATEHOUSE_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("EnvDuration fallback=%v want=1s", got)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("GATEHOUSE_TEST_LIST", "/healthz*, /metrics* ,,/users*")
	got := EnvList("GATEHOUSE_TEST_LIST", nil)
	want := []string{"/healthz*", "/metrics*", "/users*"}
	if len(got) != len(want) {
		t.Fatalf("EnvList=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EnvList[%d]=%q want=%q", i, got[i], want[i])
		}
	}

	def := []string{"/a*"}
	if got := EnvList("GATEHOUSE_TEST_LIST_MISSING", def); len(got) != 1 || got[0] != "/a*" {
		t.Fatalf("EnvList fallback=%v want=%v", got, def)
	}
}
