// Command tzblobinspect reads and writes persisted time change rule blobs.
//
// Dump a blob:
//
//	tzblobinspect rules.blob
//
// Create one from a POSIX TZ string:
//
//	tzblobinspect -write "EST5EDT,M3.2.0/2,M11.1.0/2" rules.blob
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/tzclock/go-tzclock/tzblob"
	"github.com/tzclock/go-tzclock/tzrule"
)

func main() {
	write := flag.String("write", "", "POSIX TZ string to encode into the given file")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: tzblobinspect [-write <posix tz>] <blob file>")
		flag.Usage()
		os.Exit(1)
	}

	if *write != "" {
		dst, std, err := tzrule.ParseTZ(*write)
		if err != nil {
			fmt.Println("parsing zone:", err)
			os.Exit(1)
		}
		var buf bytes.Buffer
		if err := tzblob.Encode(&buf, dst, std); err != nil {
			fmt.Println("encoding:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
			fmt.Println("writing file:", err)
			os.Exit(1)
		}
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("reading file:", err)
		os.Exit(1)
	}
	dst, std, err := tzblob.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println("decoding:", err)
		os.Exit(1)
	}
	fmt.Println("Daylight:", dst)
	fmt.Println("Standard:", std)
}
