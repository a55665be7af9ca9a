// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelinha/panelinha/internal/config"
)

// ServerStatus holds the probed state of a running server.
type ServerStatus struct {
	Address string `json:"address"`
	Running bool   `json:"running"`
	Ready   bool   `json:"ready"`
	Error   string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput bool
}

// newStatusCmd creates the status subcommand with all flags configured.
func newStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status of a running panelinha server",
		Long:  `Probe the observability endpoints of a running server and report liveness and readiness.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	appCfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	status := queryServerStatus(appCfg.ObservabilityAddr)

	if cfg.jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(formatStatusLine(status))
	return nil
}

// queryServerStatus probes the liveness and readiness endpoints.
func queryServerStatus(addr string) ServerStatus {
	status := ServerStatus{Address: probeAddr(addr)}

	client := &http.Client{Timeout: 2 * time.Second}

	liveResp, err := client.Get(fmt.Sprintf("http://%s/healthz/liveness", status.Address))
	if err != nil {
		status.Error = "not running"
		return status
	}
	defer func() { _ = liveResp.Body.Close() }()
	status.Running = liveResp.StatusCode == http.StatusOK

	readyResp, err := client.Get(fmt.Sprintf("http://%s/healthz/readiness", status.Address))
	if err != nil {
		return status
	}
	defer func() { _ = readyResp.Body.Close() }()
	status.Ready = readyResp.StatusCode == http.StatusOK

	return status
}

// probeAddr normalizes a listen address into one a client can dial.
// A bare port like ":9100" gets a loopback host.
func probeAddr(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}

// formatStatusLine formats the status as a human-readable line.
func formatStatusLine(status ServerStatus) string {
	if !status.Running {
		reason := "not running"
		if status.Error != "" {
			reason = status.Error
		}
		return fmt.Sprintf("panelinha at %s: %s", status.Address, reason)
	}

	parts := []string{"running"}
	if status.Ready {
		parts = append(parts, "ready")
	} else {
		parts = append(parts, "not ready")
	}
	return fmt.Sprintf("panelinha at %s: %s", status.Address, strings.Join(parts, ", "))
}
