package domain

const (
	RoleCustomer = "customer"
	RoleSales    = "sales"
)

type User struct {
	ID   string `db:"uid"`
	Hash string `db:"pwd_hash"`
	Role string `db:"role"`
	Name string `db:"name"`
}

type Customer struct {
	ID    string `db:"cid"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

type Session struct {
	CustomerID string `db:"cid"`
	No         int    `db:"session_no"`
	Start      string `db:"start_time"`
	End        string `db:"end_time"`
}

// Actor identifies who is calling into the store and which session scopes their cart.
type Actor struct {
	UserID     string `db:"uid"`
	CustomerID string `db:"cid"`
	SessionNo  int    `db:"session_no"`
	Role       string `db:"role"`
}

func (a Actor) IsSales() bool { return a.Role == RoleSales }
