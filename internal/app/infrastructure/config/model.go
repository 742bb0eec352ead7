package config

type Config struct {
	App App `json:"app"`
}

type App struct {
	LogLevel   string   `json:"log_level"`
	GinMode    string   `json:"gin_mode"`
	OAuth      string   `json:"oauth"`
	Username   string   `json:"username"`
	AuthToken  string   `json:"auth_token"`
	ListenAddr string   `json:"listen_addr"`
	Channels   []string `json:"channels"`
}
