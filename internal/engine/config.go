package engine

import (
	"time"

	"github.com/spf13/viper"
)

// Config хранит параметры запуска симуляции.
type Config struct {
	// Seed - мастер-зерно. Весь рандом ядра (бой, восприятие, AI)
	// детерминирован относительно него.
	Seed int64 `mapstructure:"seed"`

	// MaxTurnIterations - предохранитель цикла ходов монстров.
	// Настраиваемая граница без игрового смысла: ее срабатывание
	// означает баг планирования, а не ситуацию баланса.
	MaxTurnIterations int `mapstructure:"turn_cap"`

	// ViewRadius - дальность прямой видимости.
	ViewRadius int `mapstructure:"view_radius"`

	// Размер демонстрационной арены.
	ArenaWidth  int `mapstructure:"arena_width"`
	ArenaHeight int `mapstructure:"arena_height"`

	// DebugPort - порт отладочного HTTP-сервера. 0 = выключен.
	DebugPort int `mapstructure:"debug_port"`

	// SaveDir - каталог для файлов реплеев.
	SaveDir string `mapstructure:"save_dir"`
}

// NewConfig создает конфиг по умолчанию (случайный сид).
func NewConfig() Config {
	return Config{
		Seed:              time.Now().UnixNano(),
		MaxTurnIterations: 100,
		ViewRadius:        20,
		ArenaWidth:        30,
		ArenaHeight:       20,
		SaveDir:           "replays",
	}
}

// LoadConfig читает конфиг: значения по умолчанию, затем
// необязательный yaml-файл, затем переменные окружения GRIMDELVE_*.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("seed", 0)
	v.SetDefault("turn_cap", 100)
	v.SetDefault("view_radius", 20)
	v.SetDefault("arena_width", 30)
	v.SetDefault("arena_height", 20)
	v.SetDefault("debug_port", 0)
	v.SetDefault("save_dir", "replays")

	v.SetEnvPrefix("GRIMDELVE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}
