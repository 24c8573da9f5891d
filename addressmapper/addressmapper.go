// Package addressmapper follows ISO Address Claim (PGN 60928) messages seen on the bus and keeps track of which NAME
// currently owns which source address. Mapper is passive: it never sends anything to the bus, requests for address
// claims can be created with AddressClaimRequest and sent by the caller.
package addressmapper

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-can-types/cantypes"
)

// PGNISORequest is PGN of message that requests other PGN from one node or from everyone.
const PGNISORequest cantypes.PGN = 59904

// Node is controller application seen on bus. Node is identified by its NAME, source address can change over time.
type Node struct {
	Source   uint8         `json:"source" yaml:"source"`
	NAME     cantypes.Name `json:"name" yaml:"name"`
	Claimed  time.Time     `json:"claimed" yaml:"claimed"`
	LastSeen time.Time     `json:"last_seen" yaml:"last_seen"`
}

// HasAddress tells if node currently owns an address. Nodes that have lost address claim or sent "cannot claim"
// have AddressNull as their source.
func (n Node) HasAddress() bool {
	return n.Source < cantypes.AddressNull
}

type Nodes []Node

type AddressMapper struct {
	mutex sync.Mutex

	knownNodes map[cantypes.Name]*Node
	// addresses 254 and 255 have special meaning and can not be owned by node
	address2node [cantypes.AddressNull]*Node
}

func NewAddressMapper() *AddressMapper {
	return &AddressMapper{
		mutex:      sync.Mutex{},
		knownNodes: make(map[cantypes.Name]*Node),
	}
}

// Process updates address table from message. Returns nodes that claimed new address or lost their address because
// of this message. Claimant is always first in returned list.
func (m *AddressMapper) Process(msg cantypes.Message[cantypes.Data], at time.Time) (Nodes, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	header := msg.ID().Header()
	source := header.Source

	if header.PGN != cantypes.PGNISOAddressClaim.IntoBits() {
		if source < cantypes.AddressNull && m.address2node[source] != nil {
			m.address2node[source].LastSeen = at
		}
		return nil, nil
	}
	b := msg.PDU().Bytes()
	name, err := cantypes.NameFromAddressClaim(b[:])
	if err != nil {
		return nil, fmt.Errorf("address mapper failed to decode address claim: %w", err)
	}
	return m.processISOAddressClaim(source, name, at), nil
}

func (m *AddressMapper) processISOAddressClaim(source uint8, name cantypes.Name, at time.Time) Nodes {
	currentNode, ok := m.knownNodes[name]
	if !ok { // is new unseen device so create it
		currentNode = &Node{
			Source: cantypes.AddressNull,
			NAME:   name,
		}
		m.knownNodes[name] = currentNode
	}
	currentNode.LastSeen = at

	if source == cantypes.AddressNull {
		// "cannot claim address" is sent from null address, node has given up its address
		return m.unassign(currentNode)
	}
	owner := m.address2node[source]
	if owner == currentNode {
		return nil // repeated claim for address node already owns
	}

	if owner == nil {
		// a) in this case we probably started to listen already powered-up and claimed network. assume
		//    that this name is actually (settled by claim process) owner of this address
		m.unassign(currentNode)
		m.assign(currentNode, source, at)
		return Nodes{*currentNode}
	}
	if currentNode.NAME < owner.NAME {
		// b) by J1939 address claim logic this node now claims existing address as its name is lower
		owner.Source = cantypes.AddressNull
		m.unassign(currentNode)
		m.assign(currentNode, source, at)
		return Nodes{*currentNode, *owner}
	}
	// c) existing owner has higher priority NAME, new claimant loses (and its previous address if it had one)
	return m.unassign(currentNode)
}

func (m *AddressMapper) assign(node *Node, source uint8, at time.Time) {
	node.Source = source
	node.Claimed = at
	m.address2node[source] = node
}

func (m *AddressMapper) unassign(node *Node) Nodes {
	if !node.HasAddress() {
		return nil
	}
	if m.address2node[node.Source] == node {
		m.address2node[node.Source] = nil
	}
	node.Source = cantypes.AddressNull
	return Nodes{*node}
}

// Nodes returns all known (current and previous) nodes ordered by NAME.
func (m *AddressMapper) Nodes() Nodes {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make(Nodes, 0, len(m.knownNodes))
	for _, n := range m.knownNodes {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NAME < result[j].NAME })
	return result
}

// NodesInUseBySource returns list of Nodes that are currently in use (assigned valid source address).
func (m *AddressMapper) NodesInUseBySource() map[uint8]Node {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make(map[uint8]Node)
	for _, n := range m.knownNodes {
		if !n.HasAddress() {
			continue
		}
		result[n.Source] = *n
	}
	return result
}

// NodeBySource returns node that currently owns given address.
func (m *AddressMapper) NodeBySource(source uint8) (Node, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if source >= cantypes.AddressNull {
		return Node{}, false
	}
	node := m.address2node[source]
	if node == nil {
		return Node{}, false
	}
	return *node, true
}

// ISORequest creates ISO Request (PGN 59904) message for given PGN. Request payload is 3 bytes long, returned length
// must be used when message is written into a frame.
func ISORequest(forPGN cantypes.PGN, destination uint8) (cantypes.Message[cantypes.Data], uint8, error) {
	if forPGN > cantypes.PGNMax {
		return cantypes.Message[cantypes.Data]{}, 0, fmt.Errorf("requested pgn %v does not fit into 18 bits: %w", forPGN, cantypes.ErrOutOfRange)
	}
	if destination == cantypes.AddressNull {
		return cantypes.Message[cantypes.Data]{}, 0, errors.New("request can not be sent to null address")
	}
	id, err := cantypes.Header{
		PGN:      PGNISORequest.IntoBits(),
		Priority: 6,
		// https://copperhilltech.com/blog/sae-j1939-address-claim-procedure-sae-j193981-network-management/
		// "A node, that has not yet claimed an address, must use the NULL address (254) as the source address
		//  when sending a Request for Address Claimed message."
		Source:      cantypes.AddressNull,
		Destination: destination,
	}.ID()
	if err != nil {
		return cantypes.Message[cantypes.Data]{}, 0, err
	}
	data, err := cantypes.DataFromBytes([]byte{ // order as little endian
		uint8(forPGN & 0xff),
		uint8((forPGN >> 8) & 0xff),
		uint8((forPGN >> 16) & 0xff),
	})
	if err != nil {
		return cantypes.Message[cantypes.Data]{}, 0, err
	}
	return cantypes.NewMessage(id, data), 3, nil
}

// AddressClaimRequest creates request for ISO Address Claim. Use cantypes.AddressGlobal as destination to learn NAMEs of
// all nodes on bus.
func AddressClaimRequest(destination uint8) (cantypes.Message[cantypes.Data], uint8, error) {
	return ISORequest(cantypes.PGNISOAddressClaim, destination)
}
