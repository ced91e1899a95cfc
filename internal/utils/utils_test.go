package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestParseIntArg(t *testing.T) {
	testCases := []struct {
		input    string
		fallback int
		min      int
		expected int
		wantErr  bool
	}{
		{"", 5, 1, 5, false},
		{"3", 5, 1, 3, false},
		{"0", 5, 0, 0, false},
		{"0", 5, 1, 0, true},
		{"abc", 5, 1, 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseIntArg(tc.input, tc.fallback, tc.min)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseIntArg(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseIntArg(%q) = %d, want %d", tc.input, got, tc.expected)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(3); !reflect.DeepEqual(got, []uint16{1, 2, 3}) {
		t.Errorf("CreateRankList(3) = %v", got)
	}
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("CreateRankList(0) = %v", got)
	}
}

type sample struct {
	Section struct {
		Size int    `toml:"size"`
		Name string `toml:"name"`
	} `toml:"section"`
}

func TestTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")

	var in sample
	in.Section.Size = 7
	in.Section.Name = "lamb"
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile: %v", err)
	}
	if !FileExists(path) {
		t.Fatal("file not written")
	}

	var out sample
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatalf("LoadTOMLFile: %v", err)
	}
	if out != in {
		t.Errorf("loaded %+v, want %+v", out, in)
	}
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "[section]\nsize = 3\nname = \"x\"\nflag = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery: %v", err)
	}
	section, ok := ExtractSection(data, "section")
	if !ok {
		t.Fatal("section missing")
	}
	if v, ok := ExtractInt64(section, "size"); !ok || v != 3 {
		t.Errorf("size = %d, %v", v, ok)
	}
	if v, ok := ExtractString(section, "name"); !ok || v != "x" {
		t.Errorf("name = %q, %v", v, ok)
	}
	if v, ok := ExtractBool(section, "flag"); !ok || !v {
		t.Errorf("flag = %v, %v", v, ok)
	}
	if _, ok := ExtractInt64(section, "name"); ok {
		t.Error("string extracted as int")
	}
}

func TestGetConfigPath(t *testing.T) {
	pr := &PathResolver{homeDir: t.TempDir(), configDir: filepath.Join(t.TempDir(), "cfg")}
	path := pr.GetConfigPath("config.toml")
	if path != filepath.Join(pr.ConfigDir(), "config.toml") {
		t.Errorf("GetConfigPath = %s", path)
	}
}

func TestGetAbsolutePath(t *testing.T) {
	if got := GetAbsolutePath(""); got != "unknown" {
		t.Errorf("GetAbsolutePath(\"\") = %q", got)
	}
	if got := GetAbsolutePath("x.toml"); !filepath.IsAbs(got) {
		t.Errorf("GetAbsolutePath(x.toml) = %q, want absolute", got)
	}
}

func TestYAMLHelpers(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"config.yaml", true},
		{"CONFIG.YML", true},
		{"config.toml", false},
		{"yaml", false},
	}
	for _, tc := range testCases {
		if got := IsYAMLFile(tc.path); got != tc.expected {
			t.Errorf("IsYAMLFile(%q) = %v, want %v", tc.path, got, tc.expected)
		}
	}

	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := SaveYAMLFile(map[string]any{"section": map[string]any{"size": 3, "name": "x"}}, path); err != nil {
		t.Fatalf("SaveYAMLFile: %v", err)
	}
	data, err := ParseYAMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseYAMLWithRecovery: %v", err)
	}
	section, ok := ExtractSection(data, "section")
	if !ok {
		t.Fatal("section missing")
	}
	if v, ok := ExtractInt64(section, "size"); !ok || v != 3 {
		t.Errorf("size = %d, %v", v, ok)
	}
}
