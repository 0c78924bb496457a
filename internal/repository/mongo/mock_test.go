package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// commandTargets lists the recorded commands as "<name> <collection>".
func commandTargets(mt *mtest.T) []string {
	targets := make([]string, 0)
	for _, e := range mt.GetAllStartedEvents() {
		targets = append(targets, e.CommandName+" "+e.Command.Lookup(e.CommandName).StringValue())
	}
	return targets
}

// lastCommand returns the most recent command with the given name against
// collection, failing the test when there is none.
func lastCommand(mt *mtest.T, name, collection string) bson.Raw {
	mt.Helper()
	events := mt.GetAllStartedEvents()
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.CommandName == name && e.Command.Lookup(name).StringValue() == collection {
			return e.Command
		}
	}
	mt.Fatalf("no %s command against %s in %v", name, collection, commandTargets(mt))
	return nil
}
