package models

type UserRole string
type StylistCategory string
type StylistStatus string
type ReservationStatus string
type DeplacementStatus string
type ProposalStatus string

const (
	UserRoleClient  UserRole = "client"
	UserRoleStylist UserRole = "stylist"
	UserRoleAdmin   UserRole = "admin"

	CategoryMen    StylistCategory = "Men"
	CategoryWomen  StylistCategory = "Women"
	CategoryMobile StylistCategory = "Mobile"

	StylistStatusPendingEmailConfirmation StylistStatus = "pending_email_confirmation"
	StylistStatusPendingActivation        StylistStatus = "pending_activation"
	StylistStatusActive                   StylistStatus = "active"
	StylistStatusRejected                 StylistStatus = "rejected"

	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
	ReservationStatusCompleted ReservationStatus = "Completed"

	DeplacementStatusPending   DeplacementStatus = "Pending"
	DeplacementStatusAccepted  DeplacementStatus = "Accepted"
	DeplacementStatusRefused   DeplacementStatus = "Refused"
	DeplacementStatusCancelled DeplacementStatus = "Cancelled"

	ProposalStatusPending  ProposalStatus = "Pending"
	ProposalStatusAccepted ProposalStatus = "Accepted"
	ProposalStatusRefused  ProposalStatus = "Refused"
)

func (c StylistCategory) IsValid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryMobile:
		return true
	}
	return false
}

// reservationTransitions перечисляет разрешенные переходы статуса брони.
// Сейчас разрешен любой переход между четырьмя статусами.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted},
	ReservationStatusConfirmed: {ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted},
	ReservationStatusCancelled: {ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted},
	ReservationStatusCompleted: {ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted},
}

func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

// CanTransitionTo сообщает, разрешен ли переход s -> next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
