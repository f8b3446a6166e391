package adminapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dame6k/beatstore/internal/cart"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/page"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/labstack/echo/v4"
)

type cartItemPayload struct {
	ID       string  `json:"id" validate:"required,max=200"`
	Title    string  `json:"title" validate:"max=200"`
	Price    float64 `json:"price" validate:"gte=0"`
	Type     string  `json:"type" validate:"max=40"`
	Cover    string  `json:"cover"`
	Meta     string  `json:"meta" validate:"max=200"`
	Quantity int     `json:"quantity" validate:"gte=0,lte=99"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", withPage(getCart))
	webserver.ApiPOST("/cart/items", withPage(addCartItem))
	webserver.ApiPOST("/cart/products/:id", withPage(addCartProduct))
	webserver.ApiPOST("/cart/trigger", withPage(addCartTrigger))
	webserver.ApiDELETE("/cart/items/:id", withPage(removeCartItem))
	webserver.ApiDELETE("/cart", withPage(clearCart))
	webserver.ApiPOST("/cart/open", withPage(openCart))
	webserver.ApiPOST("/cart/close", withPage(closeCart))
	webserver.ApiPOST("/cart/key", withPage(cartKey))
	webserver.ApiPOST("/cart/checkout", withPage(checkout))
}

func getCart(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Cart.View())
}

func addCartItem(c echo.Context, p *page.Page, _ string) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid cart item", err.Error())
	}
	view, err := p.Cart.AddItem(domain.CartItem(payload))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ITEM", "Invalid cart item", err.Error())
	}
	return ok(c, view)
}

func addCartProduct(c echo.Context, p *page.Page, _ string) error {
	view, err := p.Cart.AddProduct(c.Param("id"))
	if errors.Is(err, cart.ErrUnknownProduct) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not on the page", nil)
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ITEM", "Invalid cart item", err.Error())
	}
	return ok(c, view)
}

func addCartTrigger(c echo.Context, p *page.Page, _ string) error {
	var t cart.Trigger
	if err := c.Bind(&t); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse trigger", err.Error())
	}
	if err := c.Validate(&t); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid trigger", err.Error())
	}
	view, err := p.Cart.AddFromTrigger(t)
	if errors.Is(err, cart.ErrNoPrice) {
		return fail(c, http.StatusUnprocessableEntity, "NO_PRICE", "No pudimos leer el precio del producto.", nil)
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ITEM", "Invalid cart item", err.Error())
	}
	return ok(c, view)
}

func removeCartItem(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Cart.RemoveItem(c.Param("id")))
}

func clearCart(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Cart.Clear())
}

func openCart(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Cart.Open())
}

func closeCart(c echo.Context, p *page.Page, _ string) error {
	return ok(c, p.Cart.Close())
}

func cartKey(c echo.Context, p *page.Page, _ string) error {
	var payload struct {
		Key string `json:"key" validate:"required"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse key", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Key required", err.Error())
	}
	return ok(c, p.Cart.HandleKey(payload.Key))
}

func checkout(c echo.Context, p *page.Page, profile string) error {
	count, total := p.Cart.Count(), p.Cart.Total()
	target, err := p.Cart.Checkout()
	if errors.Is(err, cart.ErrEmpty) {
		return fail(c, http.StatusConflict, "CART_EMPTY", cart.EmptyText, nil)
	}
	audit(c, profile, p.Auth.View().Email, domain.ActionCheckout,
		fmt.Sprintf("%d items, %s", count, cart.FormatCurrency(total)))
	return ok(c, map[string]interface{}{
		"target": target,
		"cart":   p.Cart.View(),
	})
}
