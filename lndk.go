// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (C) 2015-2020 The Lightning Network Developers

package lndk

import (
	"fmt"
	"net"
	"path/filepath"

	"github.com/niteshbalusu11/lndk/cert"
	"github.com/niteshbalusu11/lndk/lndkrpc"
	"github.com/niteshbalusu11/lndk/offers"
	"github.com/niteshbalusu11/lndk/signal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// Main is the true entry point for lndk. It is required to provide a
// callable interface around the daemon so that the top level main function
// stays minimal.
func Main(cfg *Config, interceptor signal.Interceptor) error {
	defer func() {
		log.Info("Shutdown complete")
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Initialize logging at the default logging level.
	err := initLogRotator(
		filepath.Join(cfg.LogDir, defaultLogFilename),
		cfg.MaxLogFileSize, cfg.MaxLogFiles,
	)
	if err != nil {
		return fmt.Errorf("unable to initialize logging: %w", err)
	}

	log.Infof("Version: %v", Version())

	// Provision the daemon's own TLS identity before clients can dial
	// in. Existing credentials are reused across restarts.
	tlsIPs, err := cert.ParseTLSIPs(cfg.TLSIPs)
	if err != nil {
		return err
	}

	err = cert.GenCredentials(cfg.TLSCertPath, cfg.TLSKeyPath, tlsIPs)
	if err != nil {
		return fmt.Errorf("unable to provision TLS credentials: %w",
			err)
	}

	tlsCert, _, err := cert.LoadCredentials(
		cfg.TLSCertPath, cfg.TLSKeyPath,
	)
	if err != nil {
		return fmt.Errorf("unable to load TLS credentials: %w", err)
	}

	handler := offers.NewHandler(offers.CryptoRandSource{})
	rpcServer := newRPCServer(cfg, handler)

	grpcServer := grpc.NewServer(grpc.Creds(
		credentials.NewTLS(cert.TLSConfFromCert(tlsCert)),
	))
	lndkrpc.RegisterOffersServer(grpcServer, rpcServer)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %v: %w", cfg.Listen,
			err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- grpcServer.Serve(lis)
	}()

	log.Infof("RPC server listening on %v", lis.Addr())

	// Wait for shutdown signal from either a graceful server stop or
	// from the interrupt handler.
	select {
	case err := <-errChan:
		return err

	case <-interceptor.ShutdownChannel():
		log.Info("Received shutdown request, stopping RPC server")
		grpcServer.GracefulStop()
	}

	return nil
}
