// Package queue: the background consumer listens to the order.committed
// and stock.replenishment queues and appends human-readable lines to
// logs/orders.log.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartOrderLogConsumer connects to RabbitMQ, declares both event
// queues (durable), and starts consuming messages. Each message is
// appended to logs/orders.log in a single-line, human-friendly format.
// The function runs a reconnect loop with exponential backoff; it keeps
// running and logs any processing errors while rejecting the offending
// message so the server continues operating.
func StartOrderLogConsumer() error {
	url := BrokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("order-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("order-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("order-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{orderQueueName, lowStockQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	orders, err := ch.Consume(orderQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", orderQueueName, err)
	}
	alerts, err := ch.Consume(lowStockQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", lowStockQueueName, err)
	}

	for {
		select {
		case d, ok := <-orders:
			if !ok {
				return errors.New("order deliveries channel closed")
			}
			ack(d, handleOrderMessage(d.Body))
		case d, ok := <-alerts:
			if !ok {
				return errors.New("alert deliveries channel closed")
			}
			ack(d, handleLowStockMessage(d.Body))
		}
	}
}

func ack(d amqp.Delivery, err error) {
	if err != nil {
		log.Printf("order-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
		return
	}
	_ = d.Ack(false)
}

func handleOrderMessage(body []byte) error {
	var ev OrderCommittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Order committed | order_id=%d | customer=%s | city=%q | product=%q | qty=%d | unit_price=%s | total=%s | delivery=%s | stock %d -> %d\n",
		ev.CommittedAt, ev.OrderID, ev.CustomerID, ev.City, ev.Product, ev.Quantity,
		ev.UnitPrice, ev.LineTotal, ev.DeliveryDate, ev.StockBefore, ev.StockAfter)
	return appendOrderLog(line)
}

func handleLowStockMessage(body []byte) error {
	var ev LowStockEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Replenishment advisory | city=%q | product=%q | remaining=%d | threshold=%d\n",
		ev.RaisedAt, ev.City, ev.Product, ev.Remaining, ev.Threshold)
	return appendOrderLog(line)
}

func appendOrderLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "orders.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
