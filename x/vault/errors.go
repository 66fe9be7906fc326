package vault

import (
	"github.com/iov-one/iou/errors"
)

var (
	// ErrInvalidRate is raised when an exchange rate of zero is
	// supplied or stored.
	ErrInvalidRate = errors.Register(1100, "invalid exchange rate")

	// ErrPendingTicket is raised when a withdrawal request hits a
	// slot that still holds an unclaimed ticket.
	ErrPendingTicket = errors.Register(1101, "withdrawal ticket pending")

	// ErrClaimedTicket is raised when a ticket is claimed twice.
	ErrClaimedTicket = errors.Register(1102, "withdrawal ticket already claimed")

	// ErrTicketOwner is raised when a claim is attempted by anyone
	// but the ticket owner.
	ErrTicketOwner = errors.Register(1103, "invalid ticket owner")

	// ErrNotReady is raised when a ticket is claimed before its
	// unlock epoch.
	ErrNotReady = errors.Register(1104, "withdrawal not ready")
)
