package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Alerts   Alerts   `koanf:"alerts"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Auth struct {
	// Secret signs the HS256 access tokens. Must be overridden outside development.
	Secret        string        `koanf:"secret"`
	TokenDuration time.Duration `koanf:"tokenduration"`
}

type Alerts struct {
	// WarningThreshold is the budget percentage at which a warning alert is raised.
	// Anything strictly above 100 is a danger alert regardless of this value.
	WarningThreshold float64 `koanf:"warningthreshold"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: ":8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "expensebuddy",
			Pass:   "",
			Name:   "expensebuddy",
			Schema: "expensebuddy",
		},
		Auth: Auth{
			Secret:        "expense-buddy-secret-key-2024",
			TokenDuration: 24 * time.Hour,
		},
		Alerts: Alerts{
			WarningThreshold: 80,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "EXPENSEBUDDY_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "EXPENSEBUDDY_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
