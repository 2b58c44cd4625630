//go:build unix

package xposix_test

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/os/xposix"
)

func ExampleTryOpen() {
	var ec xerrno.Code
	fd := xposix.TryOpen("/nonexistent/xposix", unix.O_RDONLY, 0, &ec)
	defer fd.Close()

	fmt.Println(fd.Valid(), ec.Name())
	// Output: false ENOENT
}

func ExampleOpen() {
	_, err := xposix.Open("/nonexistent/xposix", unix.O_RDONLY, 0)
	fmt.Println(errors.Is(err, unix.ENOENT))
	fmt.Println(err)
	// Output:
	// true
	// error opening file: [/nonexistent/xposix], flags: [0x0], mode: [0]: no such file or directory
}

func ExamplePipe() {
	r, w, err := xposix.Pipe()
	if err != nil {
		panic(err)
	}
	defer r.Close()
	defer w.Close()

	_, _ = xposix.Write(w, []byte("ping"))
	buf := make([]byte, 4)
	n, _ := xposix.Read(r, buf)
	fmt.Println(string(buf[:n]))
	// Output: ping
}
