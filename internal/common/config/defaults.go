package config

import "github.com/spf13/viper"

const defaultJWTSecret = "your-super-secret-key-change-in-production"

// defaults 按配置节组织的默认值
var defaults = map[string]map[string]any{
	"server": {
		"name":             "hotel-booking-backend",
		"mode":             "debug",
		"port":             8000,
		"read_timeout":     30,
		"write_timeout":    30,
		"shutdown_timeout": 10,
	},
	"database": {
		"driver":            "postgres",
		"host":              "localhost",
		"port":              5432,
		"user":              "postgres",
		"password":          "postgres",
		"name":              "hotel_booking",
		"sslmode":           "disable",
		"timezone":          "Asia/Shanghai",
		"path":              "./data/hotel_booking.db",
		"max_idle_conns":    10,
		"max_open_conns":    100,
		"conn_max_lifetime": 60,
		"log_mode":          true,
		"slow_threshold":    200,
	},
	"redis": {
		"host":           "localhost",
		"port":           6379,
		"password":       "",
		"db":             0,
		"pool_size":      100,
		"min_idle_conns": 10,
		"dial_timeout":   5,
		"read_timeout":   3,
		"write_timeout":  3,
	},
	"mqtt": {
		"enabled":          false,
		"broker":           "tcp://localhost:1883",
		"client_id_prefix": "hotel-booking-",
		"keep_alive":       60,
		"auto_reconnect":   true,
		"connect_timeout":  10,
		"qos":              1,
		"retained":         false,
		"topic_prefix":     "hotel/",
	},
	"jwt": {
		"secret":              defaultJWTSecret,
		"access_token_expire": 168,
		"issuer":              "hotel-booking",
	},
	"sms": {
		"provider": "mock",
		"templates": map[string]string{
			"booking_created": "SMS_BOOKING_CREATED",
			"booking_status":  "SMS_BOOKING_STATUS",
		},
	},
	"logger": {
		"level":       "debug",
		"format":      "console",
		"output":      "stdout",
		"file_path":   "./logs/app.log",
		"max_size":    100,
		"max_backups": 10,
		"max_age":     30,
		"compress":    true,
		"caller":      true,
	},
	"metrics": {
		"enabled":   true,
		"namespace": "hotel_booking",
		"path":      "/metrics",
	},
	"tracing": {
		"enabled":      false,
		"service_name": "hotel-booking-backend",
		"sample_rate":  1.0,
		"environment":  "development",
	},
	"ratelimit": {
		"enabled": true,
		"limit":   600,
		"window":  60,
	},
	"cors": {
		"allowed_origins": []string{"*"},
	},
	"qrcode": {
		"size": 256,
	},
	"business.booking": {
		"timezone":               "Asia/Shanghai",
		"complete_interval":      3600,
		"stale_pending_interval": 3600,
		"create_rate_limit":      10,
		"create_rate_window":     60,
	},
}

func setDefaults(v *viper.Viper) {
	for section, values := range defaults {
		for key, value := range values {
			v.SetDefault(section+"."+key, value)
		}
	}
}
