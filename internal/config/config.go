package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Database Database `koanf:"db"`
	Auth     Auth     `koanf:"auth"`
	Forecast Forecast `koanf:"forecast"`
	Alerts   Alerts   `koanf:"alerts"`
	Payment  Payment  `koanf:"payment"`
	Rates    Rates    `koanf:"rates"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Auth struct {
	JWTSecret     string `koanf:"jwtsecret"`
	TokenTTLHours int    `koanf:"tokenttlhours"`
	BcryptCost    int    `koanf:"bcryptcost"`
}

type Forecast struct {
	// DefaultDays is the horizon used when a forecast request does not specify one.
	DefaultDays int `koanf:"defaultdays"`
	// MaxDays caps any requested range before it reaches the projector.
	MaxDays int `koanf:"maxdays"`
}

type Alerts struct {
	Schedule            string  `koanf:"schedule"`
	LookaheadDays       int     `koanf:"lookaheaddays"`
	LowBalanceThreshold float64 `koanf:"lowbalancethreshold"`
	RunOnStart          bool    `koanf:"runonstart"`
}

type Payment struct {
	BaseURL    string `koanf:"baseurl"`
	MerchantID string `koanf:"merchantid"`
	APIKey     string `koanf:"apikey"`
}

type Rates struct {
	URL    string `koanf:"url"`
	APIKey string `koanf:"apikey"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "localhost",
		Port: 5000,
		Database: Database{
			Path: "birrflow.db",
		},
		Auth: Auth{
			JWTSecret:     "birrflow_super_secret",
			TokenTTLHours: 7 * 24,
			BcryptCost:    10,
		},
		Forecast: Forecast{
			DefaultDays: 30,
			MaxDays:     3650,
		},
		Alerts: Alerts{
			Schedule:            "0 8 * * *",
			LookaheadDays:       7,
			LowBalanceThreshold: 100,
		},
		Payment: Payment{
			BaseURL: "https://api.telebirr.com/v1/payments",
		},
		Rates: Rates{
			URL: "https://api.bankfxapi.com/v1/bank/NBET",
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
		Prefix: "BIRRFLOW_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "BIRRFLOW_")), "_", ".")
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
