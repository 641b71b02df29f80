// Command tzclock converts a timestamp between UTC and the local time of a
// zone given as a POSIX TZ string.
//
//	tzclock -tz "EST5EDT,M3.2.0/2,M11.1.0/2" -t 2023-03-12T06:59:00Z
//	tzclock -tz "EST5EDT,M3.2.0/2,M11.1.0/2" -reverse -t 2023-07-04T12:00:00
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tzclock/go-tzclock/tzconv"
	"github.com/tzclock/go-tzclock/tzrule"
)

// localLayout formats local-naive timestamps, which carry no zone suffix.
const localLayout = "2006-01-02T15:04:05"

func main() {
	var (
		tz      = flag.String("tz", "", "POSIX TZ string, e.g. EST5EDT,M3.2.0/2,M11.1.0/2")
		ts      = flag.String("t", "", "instant to convert; RFC3339 for UTC input, 2006-01-02T15:04:05 for local input (default: now)")
		reverse = flag.Bool("reverse", false, "convert local time to UTC instead of UTC to local")
	)
	flag.Parse()

	if *tz == "" {
		fmt.Println("Usage: tzclock -tz <posix tz> [-t <instant>] [-reverse]")
		flag.Usage()
		os.Exit(1)
	}

	dst, std, err := tzrule.ParseTZ(*tz)
	if err != nil {
		fmt.Println("parsing zone:", err)
		os.Exit(1)
	}
	conv := tzconv.New(dst, std)

	if *reverse {
		local := time.Now().UTC()
		if *ts != "" {
			local, err = time.Parse(localLayout, *ts)
			if err != nil {
				fmt.Println("parsing local time:", err)
				os.Exit(1)
			}
		}
		utc := conv.ToUTC(local.Unix())
		fmt.Println(time.Unix(utc, 0).UTC().Format(time.RFC3339))
		return
	}

	utc := time.Now().UTC()
	if *ts != "" {
		utc, err = time.Parse(time.RFC3339, *ts)
		if err != nil {
			fmt.Println("parsing UTC time:", err)
			os.Exit(1)
		}
	}
	local, rule := conv.ToLocalRule(utc.Unix())
	fmt.Println(time.Unix(local, 0).UTC().Format(localLayout), rule.Abbrev)
}
