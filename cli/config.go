// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"

	"github.com/idrelay/idrelay/pkg/errors"
	idsdk "github.com/idrelay/idrelay/pkg/sdk"
)

type remotes struct {
	HostURL         string `toml:"host_url"`
	TLSVerification bool   `toml:"tls_verification"`
}

type filter struct {
	StartIndex string `toml:"start_index"`
	Count      string `toml:"count"`
}

type config struct {
	Remotes   remotes `toml:"remotes"`
	Filter    filter  `toml:"filter"`
	RawOutput string  `toml:"raw_output"`
}

// Readable by all user groups but writeable by the user only.
const filePermission = 0o644

var (
	errReadFail       = errors.New("failed to read config file")
	errWritingConfig  = errors.New("error in writing the updated config to file")
	defaultConfigPath = "./config.toml"
)

func read(file string) (config, error) {
	c := config{}
	data, err := os.Open(file)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}
	defer data.Close()

	buf, err := io.ReadAll(data)
	if err != nil {
		return c, errors.Wrap(errReadFail, err)
	}

	if err := toml.Unmarshal(buf, &c); err != nil {
		return config{}, err
	}

	return c, nil
}

// ParseConfig parses the config file, creating it with defaults when it
// does not exist yet.
func ParseConfig(sdkConf idsdk.Config) (idsdk.Config, error) {
	if ConfigPath == "" {
		ConfigPath = defaultConfigPath
	}

	_, err := os.Stat(ConfigPath)
	switch {
	case os.IsNotExist(err):
		defaultConfig := config{
			Remotes: remotes{
				HostURL:         "http://localhost:9017",
				TLSVerification: false,
			},
		}
		buf, err := toml.Marshal(defaultConfig)
		if err != nil {
			return sdkConf, err
		}
		if err = os.WriteFile(ConfigPath, buf, filePermission); err != nil {
			return sdkConf, errors.Wrap(errWritingConfig, err)
		}
	case err != nil:
		return sdkConf, err
	}

	c, err := read(ConfigPath)
	if err != nil {
		return sdkConf, err
	}

	if c.Filter.StartIndex != "" {
		startIndex, err := strconv.Atoi(c.Filter.StartIndex)
		if err != nil {
			return sdkConf, err
		}
		StartIndex = startIndex
	}

	if c.Filter.Count != "" {
		count, err := strconv.Atoi(c.Filter.Count)
		if err != nil {
			return sdkConf, err
		}
		Count = count
	}

	if c.RawOutput != "" {
		rawOutput, err := strconv.ParseBool(c.RawOutput)
		if err != nil {
			return sdkConf, err
		}
		RawOutput = rawOutput
	}

	if c.Remotes.HostURL != "" {
		sdkConf.HostURL = c.Remotes.HostURL
	}
	sdkConf.TLSVerification = c.Remotes.TLSVerification

	return sdkConf, nil
}
