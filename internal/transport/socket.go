package transport

import (
	"encoding/binary"
	"fmt"

	"github.com/fcurrie/ledsign/internal/wire"
	"golang.org/x/sys/unix"
)

const ethHeaderLen = 14

// Socket is a raw AF_PACKET Layer-2 socket bound to one interface,
// pre-sized for the sign's row and commit packet lengths so the hot path
// performs no per-frame allocation.
type Socket struct {
	fd      int
	ifIndex int
	srcMAC  [6]byte
	dstMAC  [6]byte

	rowFrame    []byte
	commitFrame []byte
}

// htons converts a 16-bit value to network byte order.
func htons(v uint16) uint16 {
	return (v << 8) | (v >> 8)
}

// Open creates the raw socket on iface and pre-allocates reusable frame
// buffers sized for rowPayloadLen (header + width*3) row packets and
// wire.CommitLength commit packets.
func Open(iface *Interface, rowPayloadLen int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, fmt.Errorf("open raw socket: %w", err)
	}

	addr := &unix.SockaddrLinklayer{
		Ifindex:  iface.Index,
		Protocol: htons(unix.ETH_P_ALL),
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind raw socket to %s: %w", iface.Name, err)
	}

	s := &Socket{
		fd:          fd,
		ifIndex:     iface.Index,
		srcMAC:      iface.HWAddr,
		dstMAC:      wire.DestMAC,
		rowFrame:    make([]byte, ethHeaderLen+rowPayloadLen),
		commitFrame: make([]byte, ethHeaderLen+wire.CommitLength),
	}
	s.writeHeader(s.rowFrame, wire.RowEtherType)
	s.writeHeader(s.commitFrame, wire.CommitEtherType)

	return s, nil
}

// Close releases the socket's file descriptor.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

func (s *Socket) writeHeader(frame []byte, etherType uint16) {
	copy(frame[0:6], s.dstMAC[:])
	copy(frame[6:12], s.srcMAC[:])
	binary.BigEndian.PutUint16(frame[12:14], etherType)
}

func (s *Socket) sockaddr() *unix.SockaddrLinklayer {
	addr := &unix.SockaddrLinklayer{Ifindex: s.ifIndex, Halen: 6}
	copy(addr.Addr[:6], s.dstMAC[:])
	return addr
}

// SendRow transmits one scanline's row packet (EtherType 0x5500).
// payload must be exactly the length this Socket was opened with.
func (s *Socket) SendRow(payload []byte) error {
	copy(s.rowFrame[ethHeaderLen:], payload)
	return unix.Sendto(s.fd, s.rowFrame, 0, s.sockaddr())
}

// SendCommit transmits the frame commit packet (EtherType 0x0107).
// payload must be exactly wire.CommitLength bytes.
func (s *Socket) SendCommit(payload []byte) error {
	copy(s.commitFrame[ethHeaderLen:], payload)
	return unix.Sendto(s.fd, s.commitFrame, 0, s.sockaddr())
}
