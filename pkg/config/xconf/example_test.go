package xconf_test

import (
	"fmt"

	"github.com/omeyang/xoskit/pkg/config/xconf"
)

func ExampleNewFromBytes() {
	cfg, err := xconf.NewFromBytes([]byte("log:\n  level: debug\nfile_limit: 4096\n"), xconf.FormatYAML)
	if err != nil {
		panic(err)
	}

	var settings struct {
		Log struct {
			Level string `koanf:"level"`
		} `koanf:"log"`
		FileLimit uint64 `koanf:"file_limit"`
	}
	cfg.MustUnmarshal("", &settings)
	fmt.Println(settings.Log.Level, settings.FileLimit)
	// Output: debug 4096
}
