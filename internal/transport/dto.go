package transport

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	ProductName string  `json:"productName"`
	ImageLink   string  `json:"imageLink"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// UpdateProductRequest leaves absent fields untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	ImageLink   *string  `json:"imageLink"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Fields maps the present fields to their column names.
func (r UpdateProductRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.ImageLink != nil {
		fields["image_link"] = *r.ImageLink
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	return fields
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
