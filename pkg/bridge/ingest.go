package bridge

import (
	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/clusters"
	"flarebridge/matter-core/pkg/sensor"
)

// ingestLoop is the sensor-side execution context from Section 5
// (Context A): it drains samples from the sensor source and applies
// them to the attribute store, independent of and concurrent with the
// protocol coordinator loop (Context B).
func (c *Coordinator) ingestLoop() {
	defer c.wg.Done()

	samples := c.sensors.Samples()
	for {
		select {
		case <-c.closeCh:
			return
		case s, ok := <-samples:
			if !ok {
				return
			}
			c.applySample(s)
		}
	}
}

// applySample writes one sensor reading into the three attributes it
// backs, marking each changed attribute for the subscription notifier
// (Section 4.9) only when the compare-and-set store reports a real
// change.
func (c *Coordinator) applySample(s sensor.Sample) {
	if c.store.Set(clusters.OnOffKey(), s.Flame) == attrstore.Changed {
		c.subs.MarkChanged(clusters.EndpointSensor, clusters.ClusterOnOff, clusters.AttrOnOff)
	}
	if c.store.Set(clusters.CurrentLevelKey(), s.Fan) == attrstore.Changed {
		c.subs.MarkChanged(clusters.EndpointSensor, clusters.ClusterLevelControl, clusters.AttrCurrentLevel)
	}
	if c.store.Set(clusters.MeasuredValueKey(), s.Temp) == attrstore.Changed {
		c.subs.MarkChanged(clusters.EndpointSensor, clusters.ClusterTemperatureMeasurement, clusters.AttrMeasuredValue)
	}
}
