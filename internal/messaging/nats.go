package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/config"
)

// PlayerSubject is the NATS subject carrying text for one player.
func PlayerSubject(uid string) string {
	return "player." + uid
}

// NatsServer is an embedded NATS server plus the in-process client
// connection used to publish and subscribe.
//
// It implements server.Service: Start blocks until Stop.
type NatsServer struct {
	ns           *server.Server
	conn         *nats.Conn
	readyTimeout time.Duration
	logger       *zap.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewNatsServer configures an embedded server from cfg. A port of -1 picks a
// random free port.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns an unstarted server or a non-nil error.
func NewNatsServer(cfg config.MessagingConfig, logger *zap.Logger) (*NatsServer, error) {
	ns, err := server.NewServer(&server.Options{
		Host:   cfg.NATSHost,
		Port:   cfg.NATSPort,
		NoSigs: true,
		NoLog:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	timeout := cfg.ReadyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NatsServer{
		ns:           ns,
		readyTimeout: timeout,
		logger:       logger,
		done:         make(chan struct{}),
	}, nil
}

// Connect starts the embedded server and opens the client connection.
// It must complete before any Publish or Subscribe.
//
// Postcondition: the server accepts connections or an error is returned.
func (n *NatsServer) Connect() error {
	go n.ns.Start()
	if !n.ns.ReadyForConnections(n.readyTimeout) {
		n.ns.Shutdown()
		return fmt.Errorf("nats server not ready for connections after %s", n.readyTimeout)
	}
	conn, err := nats.Connect(n.ns.ClientURL(), nats.Name("deltamud"))
	if err != nil {
		n.ns.Shutdown()
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn
	n.logger.Info("nats server listening", zap.String("url", n.ns.ClientURL()))
	return nil
}

// Start blocks until Stop is called.
func (n *NatsServer) Start() error {
	<-n.done
	return nil
}

// Stop drains the client connection and shuts the server down.
func (n *NatsServer) Stop() {
	n.stopOnce.Do(func() {
		if n.conn != nil {
			if err := n.conn.Drain(); err != nil {
				n.logger.Warn("draining nats connection", zap.Error(err))
			}
		}
		n.ns.Shutdown()
		n.ns.WaitForShutdown()
		close(n.done)
	})
}

// Subscribe calls handler for each message on subject.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return func() {
		if err := sub.Unsubscribe(); err != nil {
			n.logger.Debug("unsubscribe", zap.String("subject", subject), zap.Error(err))
		}
	}, nil
}

// Publish sends data to subject.
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// Flush waits until the server has processed everything published so far.
func (n *NatsServer) Flush() error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Flush()
}

// NatsPublisher publishes each message on the recipient's player subject.
type NatsPublisher struct {
	server *NatsServer
	roster Roster
}

// NewNatsPublisher wraps a connected NatsServer for per-player delivery.
//
// Precondition: server has completed Connect; roster must be non-nil.
func NewNatsPublisher(server *NatsServer, roster Roster) *NatsPublisher {
	return &NatsPublisher{server: server, roster: roster}
}

// Player implements Publisher.
func (p *NatsPublisher) Player(uid, msg string) error {
	return p.server.Publish(PlayerSubject(uid), []byte(msg))
}

// Room implements Publisher.
func (p *NatsPublisher) Room(roomID string, exclude []string, msg string) error {
	return roomFanout(p.roster, roomID, exclude, msg, p.Player)
}

// Relay subscribes to uid's subject and pushes every message onto push.
// The connection goroutine calls the returned function when the player leaves.
func (p *NatsPublisher) Relay(uid string, push func(string) error) (func(), error) {
	return p.server.Subscribe(PlayerSubject(uid), func(data []byte) {
		if err := push(string(data)); err != nil {
			p.server.logger.Debug("relay push failed", zap.String("uid", uid), zap.Error(err))
		}
	})
}
