package maidsweep

import "embed"

// embeddedTopics holds the guides shown by "maidsweep help <topic>"
//
//go:embed topics
var embeddedTopics embed.FS
