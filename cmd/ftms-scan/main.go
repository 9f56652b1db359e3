// ftms-scan — scan for BLE fitness machines advertising the Fitness
// Machine Service and print what they are.
//
// Usage:
//
//	sudo ./ftms-scan                 # scan until interrupted
//	sudo ./ftms-scan -duration 30s   # scan for 30 seconds
//	sudo ./ftms-scan -json           # output as JSON lines
//	sudo ./ftms-scan -all            # show every advertisement (no dedup)
//
// Requires: Linux with BlueZ, macOS with CoreBluetooth, or Windows.
// Scanning needs root privileges on Linux.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"tinygo.org/x/bluetooth"

	"github.com/kabili207/ftms-go/transport/ble"
)

type machine struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Type    string `json:"type"`
	RSSI    int16  `json:"rssi"`
}

func main() {
	duration := flag.Duration("duration", 0, "scan duration (0 = until interrupted)")
	asJSON := flag.Bool("json", false, "output as JSON lines")
	all := flag.Bool("all", false, "show every advertisement instead of one per machine")
	flag.Parse()

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		fmt.Fprintln(os.Stderr, "enabling adapter:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	var (
		mu   sync.Mutex
		seen = map[string]struct{}{}
	)

	err := ble.Scan(ctx, adapter, func(r ble.ScanResult) {
		addr := r.Address.String()

		if !*all {
			mu.Lock()
			if _, dup := seen[addr]; dup {
				mu.Unlock()
				return
			}
			seen[addr] = struct{}{}
			mu.Unlock()
		}

		m := machine{
			Address: addr,
			Name:    r.Name,
			Type:    r.MachineType.String(),
			RSSI:    r.RSSI,
		}
		if *asJSON {
			line, _ := json.Marshal(m)
			fmt.Println(string(line))
			return
		}
		fmt.Printf("%s  %-14s rssi=%-4d %s\n", m.Address, m.Type, m.RSSI, m.Name)
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "scan:", err)
		os.Exit(1)
	}
}
