package main

import (
	"fmt"
	"net"

	"github.com/BurntSushi/toml"

	swtch "github.com/soypat/tftp-swtch"
	"github.com/soypat/tftp-swtch/grams"
)

type fileConfig struct {
	ClientMAC  string `toml:"client_mac"`
	ClientIP   string `toml:"client_ip"`
	ClientPort uint16 `toml:"client_port"`
	ServerMAC  string `toml:"server_mac"`
	ServerIP   string `toml:"server_ip"`
	ServerPort uint16 `toml:"server_port"`
	Filename   string `toml:"filename"`
	Mode       string `toml:"mode"`
	MaxBlocks  uint16 `toml:"max_blocks"`
	// Broadcast sends the request to ff:ff:ff:ff:ff:ff instead of the
	// configured server MAC.
	Broadcast bool `toml:"broadcast_request"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		ClientMAC:  "de:ad:be:ef:fe:ff",
		ClientIP:   "192.168.1.112",
		ClientPort: 50618,
		ServerMAC:  "28:d2:44:9a:2f:f3",
		ServerIP:   "192.168.1.5",
		ServerPort: 69,
		Filename:   "boot.bin",
		Mode:       grams.ModeOctet,
		MaxBlocks:  8,
	}
}

// loadSessionConfig builds both engine configurations from a TOML file.
// Absent keys keep their defaults; path == "" loads pure defaults.
func loadSessionConfig(path string) (swtch.ClientConfig, swtch.ServerConfig, error) {
	raw := defaultConfig()
	if path != "" {
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return swtch.ClientConfig{}, swtch.ServerConfig{}, fmt.Errorf("load session config: %w", err)
		}
		if und := meta.Undecoded(); len(und) > 0 {
			return swtch.ClientConfig{}, swtch.ServerConfig{}, fmt.Errorf("unknown config key %q", und[0].String())
		}
	}

	cmac, err := net.ParseMAC(raw.ClientMAC)
	if err != nil {
		return swtch.ClientConfig{}, swtch.ServerConfig{}, fmt.Errorf("parse client_mac: %w", err)
	}
	smac, err := net.ParseMAC(raw.ServerMAC)
	if err != nil {
		return swtch.ClientConfig{}, swtch.ServerConfig{}, fmt.Errorf("parse server_mac: %w", err)
	}
	cip := net.ParseIP(raw.ClientIP)
	sip := net.ParseIP(raw.ServerIP)
	if cip == nil || sip == nil {
		return swtch.ClientConfig{}, swtch.ServerConfig{}, fmt.Errorf("bad IP address in config")
	}

	reqDst := smac
	if raw.Broadcast {
		reqDst = grams.Broadcast
	}
	cli := swtch.ClientConfig{
		MAC:        cmac,
		IP:         cip,
		ServerMAC:  reqDst,
		ServerIP:   sip,
		Port:       raw.ClientPort,
		ServerPort: raw.ServerPort,
		Filename:   raw.Filename,
		Mode:       raw.Mode,
		MaxBlocks:  raw.MaxBlocks,
	}
	srv := swtch.ServerConfig{
		MAC:        smac,
		IP:         sip,
		ClientMAC:  cmac,
		ClientIP:   cip,
		Port:       raw.ServerPort,
		ClientPort: raw.ClientPort,
		MaxBlocks:  raw.MaxBlocks,
	}
	return cli, srv, nil
}
