package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type ReferralConfig struct {
	Env 		 string `yaml:"env"`
	HTTPServer 	 		`yaml:"http_server"`
	ReferralDB 	 		`yaml:"referral_db"`
	LogConfig 	 		`yaml:"log_config"`
	KafkaService 		`yaml:"kafka-service"`
	CacheService 		`yaml:"cache-service"`
	RewardPolicy 		`yaml:"reward_policy"`
	Webhook 	 		`yaml:"webhook"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type ReferralDB struct {
	Dsn 		   string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel 	string 	`yaml:"log_level"`
	LogFormat 	string 	`yaml:"log_format"`
	LogOutput 	string 	`yaml:"log_output"`
}

type KafkaService struct {
	Host 		string `yaml:"host"`
	Port 		string `yaml:"port"`
	EventsTopic string `yaml:"events_topic" env-default:"referral-events"`
	IntakeTopic string `yaml:"intake_topic" env-default:"transaction-events"`
	IntakeGroup string `yaml:"intake_group" env-default:"referral-service"`
}

type CacheService struct {
	Addr 	 string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// RewardPolicy carries the payout policy constants. Defaults must stay
// 5% / 1% / 1000 / 8.
type RewardPolicy struct {
	DirectPercent 		float64 `yaml:"direct_percent" env-default:"0.05"`
	IndirectPercent 	float64 `yaml:"indirect_percent" env-default:"0.01"`
	MinTransactionValue float64 `yaml:"min_transaction_value" env-default:"1000"`
	MaxDirectReferrals 	int 	`yaml:"max_direct_referrals" env-default:"8"`
}

type Webhook struct {
	TransactionCallbackURL string `yaml:"transaction_callback_url"`
}

func MustLoad() *ReferralConfig {

	// Processing env config variable and file
	configPath := os.Getenv("REFERRAL_CONFIG_PATH")

	if configPath == ""{
		log.Fatalf("REFERRAL_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil{
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg ReferralConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil{
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
