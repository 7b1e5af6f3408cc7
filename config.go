// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (C) 2015-2020 The Lightning Network Developers

package lndk

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/niteshbalusu11/lndk/cert"
)

const (
	defaultConfigFilename = "lndk.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "lndk.log"
	defaultMaxLogFiles    = 3
	defaultMaxLogFileSize = 10

	defaultGRPCHost = "127.0.0.1"
	defaultGRPCPort = 7000

	defaultLndRPCHost = "localhost"
	defaultLndRPCPort = 10009
)

var (
	// DefaultLndkDir is the default directory where lndk tries to find its
	// configuration file and store its data. This is a directory in the
	// user's application data, for example ~/.lndk on Linux.
	DefaultLndkDir = btcutil.AppDataDir("lndk", false)

	// DefaultConfigFile is the default full path of lndk's configuration
	// file.
	DefaultConfigFile = filepath.Join(DefaultLndkDir, defaultConfigFilename)

	defaultLogDir = filepath.Join(DefaultLndkDir, defaultLogDirname)

	defaultTLSCertPath = filepath.Join(DefaultLndkDir, cert.TLSCertFilename)
	defaultTLSKeyPath  = filepath.Join(DefaultLndkDir, cert.TLSKeyFilename)

	defaultLndDir         = btcutil.AppDataDir("lnd", false)
	defaultLndTLSCertPath = filepath.Join(defaultLndDir, "tls.cert")

	defaultListenAddr = net.JoinHostPort(
		defaultGRPCHost, strconv.Itoa(defaultGRPCPort),
	)
	defaultLndHost = net.JoinHostPort(
		defaultLndRPCHost, strconv.Itoa(defaultLndRPCPort),
	)
)

// LndConfig holds the options needed to reach the backing lnd node. The
// macaroon is deliberately absent, callers attach their own macaroon to each
// RPC request instead of the daemon holding one.
type LndConfig struct {
	Host string `long:"host" description:"The host:port of lnd's gRPC interface."`

	TLSCertPath string `long:"tlscertpath" description:"Path to lnd's tls certificate."`
}

// Config defines the configuration options for lndk.
//
// See LoadConfig for further details regarding the configuration
// loading+parsing process.
type Config struct {
	ShowVersion bool `long:"version" description:"Display version information and exit."`

	LndkDir    string `long:"lndkdir" description:"The base directory that contains lndk's data, logs, configuration file, etc."`
	ConfigFile string `long:"configfile" description:"Path to configuration file."`

	Listen string `long:"listen" description:"Address to listen on for gRPC connections."`

	TLSCertPath string `long:"tlscertpath" description:"Path to write the TLS certificate for lndk's RPC services."`
	TLSKeyPath  string `long:"tlskeypath" description:"Path to write the TLS private key for lndk's RPC services."`
	TLSIPs      string `long:"tlsips" description:"Comma separated list of additional ips to add to the certificate."`

	LogDir         string `long:"logdir" description:"Directory to log output."`
	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 for no rotation)."`
	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB."`

	DebugLevel string `long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems."`

	Lnd *LndConfig `group:"lnd" namespace:"lnd"`
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		LndkDir:        DefaultLndkDir,
		ConfigFile:     DefaultConfigFile,
		Listen:         defaultListenAddr,
		TLSCertPath:    defaultTLSCertPath,
		TLSKeyPath:     defaultTLSKeyPath,
		LogDir:         defaultLogDir,
		MaxLogFiles:    defaultMaxLogFiles,
		MaxLogFileSize: defaultMaxLogFileSize,
		DebugLevel:     defaultLogLevel,
		Lnd: &LndConfig{
			Host:        defaultLndHost,
			TLSCertPath: defaultLndTLSCertPath,
		},
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig() (*Config, error) {
	// Pre-parse the command line options to pick up an alternative config
	// file.
	preCfg := DefaultConfig()
	if _, err := flags.Parse(&preCfg); err != nil {
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", Version())
		os.Exit(0)
	}

	// If the config file path has not been modified by the user, then
	// we'll use the default config file path. However, if the user has
	// modified their lndkdir, then we should assume they intend to use the
	// config file within it.
	configFileDir := CleanAndExpandPath(preCfg.LndkDir)
	configFilePath := CleanAndExpandPath(preCfg.ConfigFile)
	if configFileDir != DefaultLndkDir {
		if configFilePath == DefaultConfigFile {
			configFilePath = filepath.Join(
				configFileDir, defaultConfigFilename,
			)
		}
	}

	// Next, load any additional configuration options from the file.
	var configFileError error
	cfg := preCfg
	if err := flags.IniParse(configFilePath, &cfg); err != nil {
		// If it's a parsing related error, then we'll return
		// immediately, otherwise we can proceed as possibly the config
		// file doesn't exist which is OK.
		if _, ok := err.(*flags.IniError); ok {
			return nil, err
		}

		configFileError = err
	}

	// Finally, parse the remaining command line options again to ensure
	// they take precedence.
	if _, err := flags.Parse(&cfg); err != nil {
		return nil, err
	}

	// Make sure everything we just loaded makes sense.
	cleanCfg, err := ValidateConfig(cfg, usageMessage)
	if err != nil {
		return nil, err
	}

	// Warn about missing config file only after all other configuration is
	// done. This prevents the warning on help messages and invalid
	// options. Note this should go directly before the return.
	if configFileError != nil {
		log.Warnf("%v", configFileError)
	}

	return cleanCfg, nil
}

// ValidateConfig checks the given configuration to be sane. This makes sure
// no illegal values or combination of values are set. All file system paths
// are normalized. The cleaned up config is returned on success.
func ValidateConfig(cfg Config, usageMessage string) (*Config, error) {
	// If the provided lndk directory is not the default, we'll modify the
	// path to all of the files and directories that will live within it.
	lndkDir := CleanAndExpandPath(cfg.LndkDir)
	if lndkDir != DefaultLndkDir {
		cfg.TLSCertPath = filepath.Join(lndkDir, cert.TLSCertFilename)
		cfg.TLSKeyPath = filepath.Join(lndkDir, cert.TLSKeyFilename)
		cfg.LogDir = filepath.Join(lndkDir, defaultLogDirname)
	}

	// Create the lndk directory if it doesn't already exist.
	funcName := "ValidateConfig"
	if err := os.MkdirAll(lndkDir, 0700); err != nil {
		str := "%s: Failed to create lndk directory: %v"
		err := fmt.Errorf(str, funcName, err)
		return nil, err
	}

	// As soon as we're done parsing configuration options, ensure all
	// paths to directories and files are cleaned and expanded before
	// attempting to use them later on.
	cfg.LndkDir = lndkDir
	cfg.TLSCertPath = CleanAndExpandPath(cfg.TLSCertPath)
	cfg.TLSKeyPath = CleanAndExpandPath(cfg.TLSKeyPath)
	cfg.LogDir = CleanAndExpandPath(cfg.LogDir)
	cfg.Lnd.TLSCertPath = CleanAndExpandPath(cfg.Lnd.TLSCertPath)

	if cfg.Lnd.Host == "" {
		return nil, fmt.Errorf("an lnd host is required")
	}

	// The listen address must at least parse as host:port.
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return nil, fmt.Errorf("invalid listen address %v: %w",
			cfg.Listen, err)
	}

	// The tls ip string must hold only parseable ips.
	if _, err := cert.ParseTLSIPs(cfg.TLSIPs); err != nil {
		return nil, err
	}

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		str := "%s: %v"
		err := fmt.Errorf(str, funcName, err.Error())
		_, _ = fmt.Fprintln(os.Stderr, err)
		_, _ = fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	return &cfg, nil
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") &&
		!strings.Contains(debugLevel, "=") {

		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while
	// detecting issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "the specified debug level contains an " +
				"invalid subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "the specified subsystem [%v] is invalid -- " +
				"supported subsystems %v"
			return fmt.Errorf(str, subsysID,
				supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "the specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}

	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	// Convert the subsystemLoggers map keys to a slice.
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsystems for stable display.
	sort.Strings(subsystems)
	return subsystems
}
