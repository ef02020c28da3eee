package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role distinguishes customers from administrators.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type Address struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StreetAddress string             `bson:"streetAddress" json:"streetAddress"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state" json:"state"`
	PostalCode    string             `bson:"postalCode" json:"postalCode"`
	Country       string             `bson:"country" json:"country"`
	IsDefault     bool               `bson:"isDefault" json:"isDefault"`
}

// CartItem is a cart line, unique per product. Price is the line total
// (unit price times quantity) as of the last write, not re-derived on read.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// WishlistItem is a snapshot of the product at the time it was wished for.
// It does not track later changes to the product.
type WishlistItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName  string             `bson:"productName" json:"productName"`
	ProductImage string             `bson:"productImage" json:"productImage"`
	Price        float64            `bson:"price" json:"price"`
}

type OrderRecord struct {
	OrderID       primitive.ObjectID `bson:"orderId,omitempty" json:"orderId"`
	OrderDate     time.Time          `bson:"orderDate" json:"orderDate"`
	Status        string             `bson:"status" json:"status"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
}

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FName          string             `bson:"fname" json:"fname"`
	LName          string             `bson:"lname" json:"lname"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"password,omitempty"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Address        []Address          `bson:"address" json:"address"`
	Cart           []CartItem         `bson:"cart" json:"cart"`
	Wishlist       []WishlistItem     `bson:"wishlist" json:"wishlist"`
	OrderHistory   []OrderRecord      `bson:"orderHistory" json:"orderHistory"`
	Role           Role               `bson:"role" json:"role"`
	EmailVerified  bool               `bson:"emailVerified" json:"emailVerified"`
	PhoneVerified  bool               `bson:"phoneVerified" json:"phoneVerified"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddCartItem merges a purchase into the cart. An existing line for the
// product has its quantity incremented and its price recomputed; otherwise a
// new line is appended.
func (u *User) AddCartItem(productID primitive.ObjectID, quantity int, unitPrice float64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity += quantity
			u.Cart[i].Price = unitPrice * float64(u.Cart[i].Quantity)
			return nil
		}
	}
	u.Cart = append(u.Cart, CartItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     unitPrice * float64(quantity),
	})
	return nil
}

// RemoveCartItem takes quantity off the line for the product. Removing at
// least the current quantity drops the line entirely; otherwise the remainder
// is repriced at the given unit price.
func (u *User) RemoveCartItem(productID primitive.ObjectID, quantity int, unitPrice float64) error {
	for i := range u.Cart {
		if u.Cart[i].ProductID != productID {
			continue
		}
		if quantity >= u.Cart[i].Quantity {
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
		} else {
			u.Cart[i].Quantity -= quantity
			u.Cart[i].Price = unitPrice * float64(u.Cart[i].Quantity)
		}
		return nil
	}
	return ErrNotInCart
}

// AddWishlistItem appends a snapshot of the product. A second add for the
// same product is rejected rather than duplicated.
func (u *User) AddWishlistItem(product *Product) error {
	for i := range u.Wishlist {
		if u.Wishlist[i].ProductID == product.ID {
			return ErrAlreadyInWishlist
		}
	}
	u.Wishlist = append(u.Wishlist, WishlistItem{
		ProductID:    product.ID,
		ProductName:  product.ProductName,
		ProductImage: product.FirstImageURL(),
		Price:        product.ProductPrice,
	})
	return nil
}

// RemoveWishlistItem drops the entry for the product, if present.
func (u *User) RemoveWishlistItem(productID primitive.ObjectID) error {
	for i := range u.Wishlist {
		if u.Wishlist[i].ProductID == productID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return nil
		}
	}
	return ErrNotInWishlist
}

// AddressByID returns a pointer into the address list, or nil.
func (u *User) AddressByID(id primitive.ObjectID) *Address {
	for i := range u.Address {
		if u.Address[i].ID == id {
			return &u.Address[i]
		}
	}
	return nil
}

// RemoveAddress drops the address with the given id.
func (u *User) RemoveAddress(id primitive.ObjectID) error {
	for i := range u.Address {
		if u.Address[i].ID == id {
			u.Address = append(u.Address[:i], u.Address[i+1:]...)
			return nil
		}
	}
	return ErrAddressNotFound
}

// Sanitized returns a copy safe for responses, with the password hash removed.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
