// Package queue contains the background consumer that listens to the
// content.updated queue, writes structured logs to logs/content.log and
// drops the public response cache so readers see fresh content.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/redis/go-redis/v9"
)

// ConsumerDeps carries the optional collaborators of the consumer. When the
// Redis client is nil the cache-invalidation step is skipped; the audit log
// is always written.
type ConsumerDeps struct {
    Redis       *redis.Client
    CachePrefix string
}

// StartContentConsumer connects to RabbitMQ, declares the content.updated
// queue (durable), and starts consuming messages. Each event is appended to
// logs/content.log in a single-line format and the public response cache is
// flushed. The function runs a reconnect loop with exponential backoff and
// keeps running across broker restarts; processing errors are logged and
// the offending message rejected so the server continues operating.
func StartContentConsumer(brokerURL string, deps ConsumerDeps) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(brokerURL)
        if err != nil {
            log.Printf("content-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, deps); err != nil {
            log.Printf("content-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection, deps ConsumerDeps) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("content-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(ContentUpdatedQueue, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(ContentUpdatedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, deps); err != nil {
            log.Printf("content-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, deps ConsumerDeps) error {
    var ev ContentUpdatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    // Ensure logs directory exists
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "content.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Content updated | aggregate=%s | action=%s", ev.OccurredAt, ev.Aggregate, ev.Action)
    if ev.ItemID != 0 {
        line += fmt.Sprintf(" | item_id=%d", ev.ItemID)
    }
    if ev.Username != "" {
        line += fmt.Sprintf(" | by=%q", ev.Username)
    }
    if _, err := f.WriteString(line + "\n"); err != nil {
        return fmt.Errorf("write log: %w", err)
    }

    if deps.Redis != nil {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := flushCachePrefix(ctx, deps.Redis, deps.CachePrefix); err != nil {
            // Stale cache entries age out via TTL anyway; log and move on.
            log.Printf("content-consumer: cache flush failed: %v", err)
        }
    }
    return nil
}

func flushCachePrefix(ctx context.Context, rdb *redis.Client, prefix string) error {
    if prefix == "" {
        return nil
    }
    iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        return err
    }
    if len(keys) == 0 {
        return nil
    }
    return rdb.Del(ctx, keys...).Err()
}
