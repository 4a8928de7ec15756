// Package statsd wraps the few statsd calls the storage layer makes. It keeps the datadog dependency in this one
// file, so moving to another statsd client only means editing this package; any client that roughly implements
// datadog's ClientInterface will do. Until Init is called every metric goes to a no-op client.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const namespace = "entitystore"

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitSnapshotStat records how long a snapshot operation (e.g. "save" or "load") took since start.
func EmitSnapshotStat(start time.Time, op string) {
	duration := time.Since(start)
	err := Client().Timing("snapshot", duration, []string{"op:" + op}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit snapshot stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		ddstatsd.WithNamespace(namespace),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "")
	}
	client = newClient
	return nil
}

// Close flushes and closes the client set by Init and restores the no-op client.
func Close() error {
	c := client
	client = &ddstatsd.NoOpClient{}
	if err := c.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}
