package metrics

// NoopProvider discards every measurement. It is the default Provider of
// a worker Node built without WithMetrics. Every method
// returns the same stateless instrument, since nothing ever reads it back.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) TasksAcquired() Counter          { return noopInstrument{} }
func (NoopProvider) TasksFinished() Counter          { return noopInstrument{} }
func (NoopProvider) TasksRequeued() Counter          { return noopInstrument{} }
func (NoopProvider) TasksStolen() Counter            { return noopInstrument{} }
func (NoopProvider) TasksInflight() Gauge            { return noopInstrument{} }
func (NoopProvider) WorkDuration() DurationStat      { return noopInstrument{} }
func (NoopProvider) TaskTotalDuration() DurationStat { return noopInstrument{} }

// noopInstrument implements Counter, Gauge, and DurationStat at once:
// whichever shape a caller asks for, discarding the value is the same
// one-line no-op.
type noopInstrument struct{}

func (noopInstrument) Add(_ int64)      {}
func (noopInstrument) Record(_ float64) {}
