package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("GDBFRONT_CONF", filepath.Join(t.TempDir(), "missing.yaml"))

	conf := GetConfig()

	assert.Equal(t, "gdb", conf.Gdb)
	assert.Equal(t, 2, conf.Annotate)
	assert.Equal(t, "", conf.Listen)
	assert.True(t, conf.WatchSources())
	assert.Equal(t, []string{"--annotate=2", "-nx", "-q", "a.out"}, conf.GdbArgs("a.out"))
}

func TestReadConfig(t *testing.T) {
	conffile := filepath.Join(t.TempDir(), "config.yaml")
	data := "gdb: /usr/local/bin/gdb\nargs: -q\nlisten: 127.0.0.1:7070\ntty: /dev/pts/4\nwatch: false\n"
	assert.NoError(t, os.WriteFile(conffile, []byte(data), 0644))
	t.Setenv("GDBFRONT_CONF", conffile)

	conf := GetConfig()

	assert.Equal(t, "/usr/local/bin/gdb", conf.Gdb)
	assert.Equal(t, 2, conf.Annotate)
	assert.Equal(t, "127.0.0.1:7070", conf.Listen)
	assert.Equal(t, "/dev/pts/4", conf.Tty)
	assert.False(t, conf.WatchSources())
	assert.Equal(t, []string{"--annotate=2", "-q"}, conf.GdbArgs())
}

func TestBrokenConfigKeepsDefaults(t *testing.T) {
	conffile := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(conffile, []byte("gdb: [unclosed"), 0644))
	t.Setenv("GDBFRONT_CONF", conffile)

	conf := GetConfig()

	assert.Equal(t, DefaultConfig().Gdb, conf.Gdb)
}
