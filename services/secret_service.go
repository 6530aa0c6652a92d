package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	config "github.com/anjiri1684/course_academy/configs"
	"github.com/redis/go-redis/v9"
)

// Provider credentials are read from the environment but fronted by a Redis
// cache so rotated values propagate to all instances without a restart. When
// Redis is not configured the env value is used directly.

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

const secretCacheTTL = time.Hour

func redisCache() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			log.Println("⚠️ REDIS_ADDR not set, secret caching disabled")
			return
		}
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Config("REDIS_PASSWORD"),
		})
	})
	return redisClient
}

func GetSecretValue(name string) (string, error) {
	client := redisCache()
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		cached, err := client.Get(ctx, "secret:"+name).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && err != redis.Nil {
			log.Printf("⚠️ Redis read for %s failed: %v", name, err)
		}
	}

	value := config.Config(name)
	if value == "" {
		return "", fmt.Errorf("secret %s is not configured", name)
	}

	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Set(ctx, "secret:"+name, value, secretCacheTTL).Err(); err != nil {
			log.Printf("⚠️ Redis write for %s failed: %v", name, err)
		}
	}

	return value, nil
}

func RazorpayKeys() (string, string, error) {
	keyID, err := GetSecretValue("RAZORPAY_ID_KEY")
	if err != nil {
		return "", "", err
	}
	keySecret, err := GetSecretValue("RAZORPAY_SECRET_KEY")
	if err != nil {
		return "", "", err
	}
	return keyID, keySecret, nil
}
