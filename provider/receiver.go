/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package provider

import "context"

type receiverKey struct{}

// WithReceiver attaches the instance a registry lookup resolved (kind's
// default or named instance) to ctx. A kind-level Callable recovers its
// "self" this way instead of through args, which the framework reserves
// for external parameters only (spec §3).
func WithReceiver(ctx context.Context, receiver any) context.Context {
	if receiver == nil {
		return ctx
	}
	return context.WithValue(ctx, receiverKey{}, receiver)
}

// ReceiverFromContext recovers the instance WithReceiver attached, if any.
func ReceiverFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(receiverKey{})
	return v, v != nil
}
