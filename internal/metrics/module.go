package metrics

import "go.uber.org/fx"

// Module provides service metrics registered with the default registerer.
var Module = fx.Provide(New)
