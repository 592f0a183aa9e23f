package http

import (
	"net/http"

	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список продуктов
//	@Description	Возвращает все продукты с текущей ценой
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductSummaryResponse
//	@Failure		500	{string}	string	"Internal server error"
//	@Router			/api/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.ListProducts(r.Context())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductSummaryResponses(products))
}

// getPriceHistory
//
//	@Summary		История цен продукта
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID продукта"
//	@Success		200	{object}	ProductHistoryResponse
//	@Failure		400	{string}	string	"Invalid product id."
//	@Failure		404	{string}	string	"Product: <id> not found"
//	@Failure		500	{string}	string	"Internal server error"
//	@Router			/api/products/{id} [get]
func (p *ProductHandler) getPriceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	view, err := p.productUsecase.GetPriceHistory(r.Context(), id)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductHistoryResponse(view))
}

// applyDiscount
//
//	@Summary		Применить скидку
//	@Description	Уменьшает текущую цену на процент из [0, 100] и пишет новую цену в историю
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID продукта"
//	@Param			request	body		DiscountRequest	true	"Процент скидки"
//	@Success		200		{object}	DiscountResponse
//	@Failure		400		{string}	string	"Ошибка валидации"
//	@Failure		404		{string}	string	"Product: <id> not found"
//	@Failure		500		{string}	string	"Internal server error"
//	@Router			/api/products/{id}/apply-discount [post]
func (p *ProductHandler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	body, err := decodeOptionalJSON[DiscountRequest](w, r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	outcome, err := p.productUsecase.ApplyDiscount(r.Context(), id, body.toDiscountReq())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toDiscountResponse(outcome))
}

// updatePrice
//
//	@Summary		Установить новую цену
//	@Description	Задаёт абсолютную цену (>= 0). Та же цена всё равно попадает в историю
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID продукта"
//	@Param			request	body		UpdatePriceRequest	true	"Новая цена"
//	@Success		200		{object}	UpdatePriceResponse
//	@Failure		400		{string}	string	"Ошибка валидации"
//	@Failure		404		{string}	string	"Product: <id> not found"
//	@Failure		500		{string}	string	"Internal server error"
//	@Router			/api/products/{id}/update-price [put]
func (p *ProductHandler) updatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	body, err := decodeOptionalJSON[UpdatePriceRequest](w, r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	outcome, err := p.productUsecase.UpdatePrice(r.Context(), id, body.toUpdatePriceReq())
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUpdatePriceResponse(outcome))
}

// writeError логирует 5xx как ошибки, остальное как предупреждения.
func (p *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		p.logger.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
	} else {
		p.logger.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
	}

	WriteError(w, err)
}
