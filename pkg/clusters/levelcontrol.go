package clusters

import (
	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/im/message"
)

const (
	minLevel uint8 = 0
	maxLevel uint8 = 100
)

// CurrentLevelKey identifies the LevelControl CurrentLevel attribute
// in the shared attribute store.
func CurrentLevelKey() attrstore.Key {
	return attrstore.Key{Endpoint: EndpointSensor, Cluster: ClusterLevelControl, Attribute: AttrCurrentLevel}
}

func readLevelControl(store *attrstore.Store, endpoint message.EndpointID, attribute message.AttributeID) (any, message.Status) {
	if endpoint != EndpointSensor {
		return nil, message.StatusUnsupportedEndpoint
	}

	switch attribute {
	case AttrCurrentLevel:
		v, ok := store.Get(CurrentLevelKey())
		if !ok {
			return uint8(0), message.StatusSuccess
		}
		return v, message.StatusSuccess
	case AttrMinLevel:
		return minLevel, message.StatusSuccess
	case AttrMaxLevel:
		return maxLevel, message.StatusSuccess
	default:
		return nil, message.StatusUnsupportedAttribute
	}
}
