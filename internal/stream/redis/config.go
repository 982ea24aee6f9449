package redis

type StreamConfig struct {
	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
}
